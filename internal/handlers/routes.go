// internal/handlers/routes.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/service"
	"go_4_vocab_learn/internal/webutil"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterDeps はルーター構築に必要な依存をまとめたものです
type RouterDeps struct {
	Config    *config.Config
	Logger    *slog.Logger
	Vocab     VocabSource
	Profiles  service.ProfileService
	Sessions  service.SessionService
	Reminders service.ReminderService
	// Health は /health で呼ばれるストレージの疎通確認
	Health func(ctx context.Context) error
	// DevAuth が true の場合は JWT の代わりに X-Profile-ID ヘッダーを信用する
	DevAuth bool
}

// RequireActiveProfile はトークンの主体が現在ログイン中のプロフィールであることを確認します。
// 別のプロフィールのトークンは 403 になります。
func RequireActiveProfile(sessions service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := middleware.GetLogger(r.Context())
			profileID, err := middleware.GetProfileIDFromContext(r.Context())
			if err != nil {
				logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
				webutil.HandleError(w, logger, err)
				return
			}
			if _, err := sessions.Authorize(r.Context(), profileID); err != nil {
				webutil.HandleError(w, logger, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	vocabHandler := NewVocabHandler(deps.Vocab)
	sessionHandler := NewSessionHandler(deps.Sessions)
	profileHandler := NewProfileHandler(deps.Profiles)
	reminderHandler := NewReminderHandler(deps.Reminders)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Get("/vocab", vocabHandler.GetVocab)
		r.Get("/vocab/letters/{letter}", vocabHandler.GetVocabByLetter)
		r.Get("/vocab/stats", vocabHandler.GetStats)
		r.Get("/options/goals", GetGoalOptions)
		r.Get("/options/topics", GetTopicOptions)
		r.Post("/session/login", sessionHandler.Login)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			if deps.DevAuth {
				logger.Warn("Applying DEVELOPMENT authentication middleware (X-Profile-ID)")
				r.Use(middleware.DevProfileContextMiddleware)
			} else {
				r.Use(middleware.JWTAuthMiddleware(cfg))
			}
			r.Use(RequireActiveProfile(deps.Sessions))

			r.Post("/session/logout", sessionHandler.Logout)

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile/level", profileHandler.PutLevel)
			r.Put("/profile/progress", profileHandler.PutProgress)
			r.Put("/profile/goal", profileHandler.PutGoal)
			r.Put("/profile/topics", profileHandler.PutTopics)

			r.Route("/reminders", func(r chi.Router) {
				r.Post("/permission", reminderHandler.RequestPermission)
				r.Post("/channel", reminderHandler.ConfigureChannel)
				r.Post("/daily", reminderHandler.ScheduleDaily)
				r.Delete("/{reminder_id}", reminderHandler.Cancel)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if deps.Health != nil {
			if err := deps.Health(ctx); err != nil {
				slog.ErrorContext(ctx, "Health check failed: storage unreachable", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
