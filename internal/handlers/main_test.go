// internal/handlers/main_test.go
package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/handlers"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/repository"
	"go_4_vocab_learn/internal/service"
	"go_4_vocab_learn/internal/vocab"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testLogger *slog.Logger

func TestMain(m *testing.M) {
	// テスト中のログは捨てる (必要なら APP_TEST_LOG=1 で出力)
	var w io.Writer = io.Discard
	if os.Getenv("APP_TEST_LOG") != "" {
		w = os.Stderr
	}
	testLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(testLogger)

	os.Exit(m.Run())
}

// testApp はテストごとに独立したルーターと依存関係一式
type testApp struct {
	server    *httptest.Server
	cfg       *config.Config
	kvRepo    repository.KeyValueRepository
	profiles  service.ProfileService
	sessions  service.SessionService
	notifier  *service.CronNotifier
	reminders service.ReminderService
}

type testAppOptions struct {
	permission string
	devAuth    bool
	// kvRepo を指定するとストレージを差し替える (保存失敗のテスト用)
	kvRepo repository.KeyValueRepository
}

func newTestApp(t *testing.T, opts testAppOptions) *testApp {
	t.Helper()

	cfg := &config.Config{
		JWT:          config.JWTConfig{SecretKey: "handlers-test-secret"},
		Notification: config.NotificationConfig{Permission: opts.permission, Timezone: "UTC"},
	}
	config.ApplyDefaults(cfg)

	db, err := repository.NewDB("file:"+uuid.NewString()+"?mode=memory&cache=shared", testLogger)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	kvRepo := opts.kvRepo
	if kvRepo == nil {
		kvRepo = repository.NewGormKeyValueRepository(db)
	}

	profiles := service.NewProfileService(kvRepo, cfg.Storage.ProfileKey)
	require.NoError(t, profiles.Load(context.Background()))
	sessions := service.NewSessionService(profiles, cfg)

	notifier, err := service.NewCronNotifier(&cfg.Notification, &service.LogMailer{}, func() string { return "" }, testLogger)
	require.NoError(t, err)
	reminders := service.NewReminderService(notifier, model.Notification{
		Title: cfg.Notification.Title,
		Body:  cfg.Notification.Body,
		Sound: cfg.Notification.Sound,
	})

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:    cfg,
		Logger:    testLogger,
		Vocab:     vocab.Default(),
		Profiles:  profiles,
		Sessions:  sessions,
		Reminders: reminders,
		Health:    kvRepo.Ping,
		DevAuth:   opts.devAuth,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{
		server:    server,
		cfg:       cfg,
		kvRepo:    kvRepo,
		profiles:  profiles,
		sessions:  sessions,
		notifier:  notifier,
		reminders: reminders,
	}
}

// reloadProfile は保存済みデータから新しいプロフィールサービスを作り直して現在の状態を返します
func reloadProfile(t *testing.T, app *testApp) *model.UserProfile {
	t.Helper()
	fresh := service.NewProfileService(app.kvRepo, app.cfg.Storage.ProfileKey)
	require.NoError(t, fresh.Load(context.Background()))
	p, _ := fresh.Current()
	return p
}
