// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/handlers"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/repository"
	"go_4_vocab_learn/internal/service"
	"go_4_vocab_learn/internal/vocab"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(config.Cfg.Log.Level, tempLogger)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	ctx := context.Background()

	// 1. プロフィールの保存先 (key-value ストア)
	kvRepo, closeStorage, err := repository.OpenKeyValueRepository(ctx, &config.Cfg, logger)
	if err != nil {
		slog.Error("Error initializing storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStorage()

	// 2. Dependency Injection
	profileService := service.NewProfileService(kvRepo, config.Cfg.Storage.ProfileKey)
	if err := profileService.Load(ctx); err != nil {
		// 読めなくても未ログイン状態で起動を続ける
		slog.Warn("Stored profile could not be loaded, starting signed out", slog.Any("error", err))
	}
	sessionService := service.NewSessionService(profileService, &config.Cfg)

	mailer := service.NewMailer(&config.Cfg)
	notifier, err := service.NewCronNotifier(&config.Cfg.Notification, mailer, activeProfileEmail(profileService), logger)
	if err != nil {
		slog.Error("Error initializing notifier", slog.Any("error", err))
		os.Exit(1)
	}
	notifier.Start()
	defer notifier.Stop()

	reminderService := service.NewReminderService(notifier, model.Notification{
		Title: config.Cfg.Notification.Title,
		Body:  config.Cfg.Notification.Body,
		Sound: config.Cfg.Notification.Sound,
	})

	devAuth := strings.ToLower(os.Getenv("APP_AUTH_MODE")) == "dev"

	// 3. Setup Router
	router := handlers.NewRouter(handlers.RouterDeps{
		Config:    &config.Cfg,
		Logger:    logger,
		Vocab:     vocab.Default(),
		Profiles:  profileService,
		Sessions:  sessionService,
		Reminders: reminderService,
		Health:    kvRepo.Ping,
		DevAuth:   devAuth,
	})

	// 4. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は log.level と APP_ENV からロガーを組み立てます (dev は tint、それ以外は JSON)
func newLogger(level string, tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	log.Println("Log Config Loaded...")
	return slog.New(handler)
}

// activeProfileEmail はリマインダーの宛先としてログイン中ユーザーのメールアドレスを返します
func activeProfileEmail(profiles service.ProfileService) func() string {
	return func() string {
		p, ok := profiles.Current()
		if !ok || !p.IsLoggedIn {
			return ""
		}
		return p.Email
	}
}
