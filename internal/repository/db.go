package repository

import (
	"log/slog"
	"os"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go_4_vocab_learn/internal/model"
)

// NewDB は databaseURL に応じて PostgreSQL か sqlite に接続します。
// "postgres://" / "postgresql://" で始まる場合は PostgreSQL、それ以外は sqlite のファイルパスとして扱います。
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	if appLogger == nil {
		appLogger = slog.Default()
	}

	// APP_ENV=dev のときだけ SQL を全部出す
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	db, err := gorm.Open(dialectorFor(databaseURL), &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if isPostgresURL(databaseURL) {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// sqlite は書き込みが1本なので接続も1本にする
		sqlDB.SetMaxOpenConns(1)
	}

	appLogger.Info("Database connection established with GORM", slog.Bool("postgres", isPostgresURL(databaseURL)))
	return db, nil
}

// Migrate は key-value テーブルを作成します
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.KeyValue{})
}

func dialectorFor(databaseURL string) gorm.Dialector {
	if isPostgresURL(databaseURL) {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(databaseURL)
}

func isPostgresURL(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}
