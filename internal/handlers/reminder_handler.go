// internal/handlers/reminder_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/service"
	"go_4_vocab_learn/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ReminderHandler struct {
	reminders service.ReminderService
}

func NewReminderHandler(reminders service.ReminderService) *ReminderHandler {
	if reminders == nil {
		panic("handlers.NewReminderHandler: reminder service is nil")
	}
	return &ReminderHandler{reminders: reminders}
}

func (h *ReminderHandler) RequestPermission(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "RequestPermission"))

	status, err := h.reminders.RequestPermission(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.PermissionResponse{Status: status}, logger)
}

func (h *ReminderHandler) ConfigureChannel(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ConfigureChannel"))

	if err := h.reminders.ConfigureChannel(r.Context()); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScheduleDaily は毎日のリマインダーを登録します。previous_id があれば先に取り消します。
func (h *ReminderHandler) ScheduleDaily(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ScheduleDaily"))

	var req model.ScheduleReminderRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	id, err := h.reminders.ScheduleDaily(r.Context(), *req.Time, req.PreviousID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Reminder scheduled", slog.String("reminder_id", id))
	webutil.RespondWithJSON(w, http.StatusCreated, model.ScheduleReminderResponse{ID: id, Time: *req.Time}, logger)
}

func (h *ReminderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reminder_id")
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "CancelReminder"), slog.String("reminder_id", id))

	if err := h.reminders.Cancel(r.Context(), id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
