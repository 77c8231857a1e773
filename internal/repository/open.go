package repository

import (
	"context"
	"log/slog"

	"go_4_vocab_learn/internal/config"
)

// migrateKeyValue はテストで差し替える
var migrateKeyValue = Migrate

// OpenKeyValueRepository は storage.backend に応じて gorm (sqlite/postgres) か redis を選びます。
// 戻り値の関数で接続を閉じます。
func OpenKeyValueRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (KeyValueRepository, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		rdb, err := NewRedisClient(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Error closing redis connection", slog.Any("error", err))
			} else {
				logger.Info("Redis connection closed.")
			}
		}
		logger.Info("Using redis profile storage", slog.String("addr", cfg.Storage.RedisAddr))
		return NewRedisKeyValueRepository(rdb), closeFn, nil
	default:
		if cfg.Storage.Backend != "gorm" {
			logger.Warn("Unknown storage backend, defaulting to gorm", slog.String("backend", cfg.Storage.Backend))
		}
		db, err := NewDB(cfg.Database.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := migrateKeyValue(db); err != nil {
			// マイグレーションに失敗したら開いた接続を閉じてから返す
			if cerr := sqlDB.Close(); cerr != nil {
				logger.Error("Error closing database connection", slog.Any("error", cerr))
			}
			return nil, nil, err
		}
		closeFn := func() {
			if err := sqlDB.Close(); err != nil {
				logger.Error("Error closing database connection", slog.Any("error", err))
			} else {
				logger.Info("Database connection closed.")
			}
		}
		return NewGormKeyValueRepository(db), closeFn, nil
	}
}
