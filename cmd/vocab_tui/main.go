// cmd/vocab_tui/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/repository"
	"go_4_vocab_learn/internal/service"
	"go_4_vocab_learn/internal/tui"
)

func main() {
	logPath := flag.String("log", "vocab_tui.log", "Log file (the terminal is used by the UI)")
	name := flag.String("name", "", "Sign in with this name when no profile is signed in")
	email := flag.String("email", "", "Email for -name sign in")
	flag.Parse()

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := newFileLogger(logFile)
	slog.SetDefault(logger)
	ctx := middleware.WithLogger(context.Background(), logger)

	if err := run(ctx, *name, *email, logger); err != nil {
		logger.Error("vocab_tui exited with error", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, name, email string, logger *slog.Logger) error {
	kvRepo, closeStorage, err := repository.OpenKeyValueRepository(ctx, &config.Cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeStorage()

	profiles := service.NewProfileService(kvRepo, config.Cfg.Storage.ProfileKey)
	if err := profiles.Load(ctx); err != nil {
		logger.Warn("Stored profile could not be loaded, starting signed out", slog.Any("error", err))
	}

	if err := signInIfNeeded(ctx, profiles, name, email); err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewApp(ctx, profiles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// signInIfNeeded は -name が渡され、まだ誰もログインしていないときだけログインします
func signInIfNeeded(ctx context.Context, profiles service.ProfileService, name, email string) error {
	if name == "" {
		return nil
	}
	if p, ok := profiles.Current(); ok && p.IsLoggedIn {
		return nil
	}
	_, err := profiles.Login(ctx, &model.LoginRequest{Name: name, Email: email, Level: model.LevelBeginner})
	if err != nil && !errors.Is(err, model.ErrPersistence) {
		return fmt.Errorf("sign in: %w", err)
	}
	return nil
}

func newFileLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if config.Cfg.Log.Level == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}))
}
