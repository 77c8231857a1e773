// internal/handlers/profile_handler.go
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/service"
	"go_4_vocab_learn/internal/webutil"
)

// ProfileHandler の各ハンドラは RequireActiveProfile の後ろに置くこと
type ProfileHandler struct {
	profiles service.ProfileService
}

func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	if profiles == nil {
		panic("handlers.NewProfileHandler: profile service is nil")
	}
	return &ProfileHandler{profiles: profiles}
}

// isPersistenceOnly は「メモリ上の更新は成功したが保存に失敗した」エラーかどうか
func isPersistenceOnly(err error) bool {
	return errors.Is(err, model.ErrPersistence)
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetProfile"))

	profile, ok := h.profiles.Current()
	if !ok {
		webutil.HandleError(w, logger, model.ErrUnauthenticated)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

func (h *ProfileHandler) PutLevel(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateLevelRequest
	h.update(w, r, "PutLevel", &req, func(ctx context.Context) error {
		return h.profiles.UpdateUserLevel(ctx, req.Level)
	})
}

func (h *ProfileHandler) PutProgress(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProgressRequest
	h.update(w, r, "PutProgress", &req, func(ctx context.Context) error {
		return h.profiles.UpdateProgress(ctx, *req.Progress)
	})
}

func (h *ProfileHandler) PutGoal(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateGoalRequest
	h.update(w, r, "PutGoal", &req, func(ctx context.Context) error {
		return h.profiles.UpdateGoal(ctx, req.Goal, req.DailyMinutes)
	})
}

func (h *ProfileHandler) PutTopics(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTopicsRequest
	h.update(w, r, "PutTopics", &req, func(ctx context.Context) error {
		topics := req.Topics
		if topics == nil {
			topics = []string{}
		}
		return h.profiles.UpdateFollowedTopics(ctx, topics)
	})
}

// update はプロフィール更新系ハンドラの共通処理
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, name string, req interface{}, apply func(ctx context.Context) error) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", name))

	if err := webutil.DecodeJSONBody(r, req); err != nil {
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

	persisted := true
	if err := apply(r.Context()); err != nil {
		if !isPersistenceOnly(err) {
			logger.Error("Profile update failed in service", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
			return
		}
		logger.Warn("Profile updated in memory but not persisted", slog.Any("error", err))
		persisted = false
	}

	profile, _ := h.profiles.Current()
	logger.Info("Profile updated", slog.Bool("persisted", persisted))
	webutil.RespondWithJSON(w, http.StatusOK, model.ProfileResponse{Profile: profile, Persisted: persisted}, logger)
}
