//go:generate mockery --name KeyValueRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueRepository は端末の永続ストレージに相当する key-value ストアです。
type KeyValueRepository interface {
	Get(ctx context.Context, key string) (string, error) // 存在しない場合は model.ErrNotFound
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

type gormKeyValueRepository struct {
	db *gorm.DB
}

func NewGormKeyValueRepository(db *gorm.DB) KeyValueRepository {
	return &gormKeyValueRepository{db: db}
}

func (r *gormKeyValueRepository) Get(ctx context.Context, key string) (string, error) {
	logger := middleware.GetLogger(ctx)
	var kv model.KeyValue
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&kv)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", model.ErrNotFound
		}
		logger.Error("Error reading key from DB", "error", result.Error, "key", key)
		return "", fmt.Errorf("gormKeyValueRepository.Get: %w", result.Error)
	}
	return kv.Value, nil
}

func (r *gormKeyValueRepository) Set(ctx context.Context, key, value string) error {
	logger := middleware.GetLogger(ctx)
	kv := model.KeyValue{Key: key, Value: value}
	// 同じキーは上書き (last write wins)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv)
	if result.Error != nil {
		logger.Error("Error writing key to DB", "error", result.Error, "key", key)
		return fmt.Errorf("gormKeyValueRepository.Set: %w", result.Error)
	}
	return nil
}

func (r *gormKeyValueRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("gormKeyValueRepository.Ping: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
