// internal/handlers/session_handler.go
package handlers

import (
	"net/http"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/service"
	"go_4_vocab_learn/internal/webutil"
)

type SessionHandler struct {
	service service.SessionService
}

func NewSessionHandler(s service.SessionService) *SessionHandler {
	if s == nil {
		panic("handlers.NewSessionHandler: session service is nil")
	}
	return &SessionHandler{service: s}
}

// Login はプロフィールをログイン状態にしてアクセストークンを返します
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode login request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed for login", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	res, err := h.service.Login(r.Context(), &req)
	if err != nil {
		logger.Error("Login failed in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	if !res.Persisted {
		logger.Warn("Login succeeded but profile was not persisted", "profile_id", res.Profile.ID)
	}
	webutil.RespondWithJSON(w, http.StatusOK, res, logger)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	profileID, err := middleware.GetProfileIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.Logout(r.Context(), profileID); err != nil {
		if !isPersistenceOnly(err) {
			logger.Error("Logout failed in service", "error", err)
			webutil.HandleError(w, logger, err)
			return
		}
		logger.Warn("Logged out but profile was not persisted", "error", err)
	}

	logger.Info("Logout successful", "profile_id", profileID)
	w.WriteHeader(http.StatusNoContent)
}
