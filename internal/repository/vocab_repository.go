package repository

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"

	"gorm.io/gorm"
)

// VocabRepository はビルド済み単語DB (vocab.db) への読み書きを行います
type VocabRepository interface {
	ReplaceAll(ctx context.Context, entries []model.VocabEntry) (int64, error)
	FindByLetter(ctx context.Context, letter string) ([]model.VocabEntry, error)
	Count(ctx context.Context) (int64, error)
}

type gormVocabRepository struct {
	db *gorm.DB
}

func NewGormVocabRepository(db *gorm.DB) VocabRepository {
	return &gormVocabRepository{db: db}
}

// MigrateVocab は vocab_entries テーブルを作成します
func MigrateVocab(db *gorm.DB) error {
	return db.AutoMigrate(&model.VocabEntryRecord{})
}

// ReplaceAll は既存の行を全て削除し、entries を順番どおりに書き込みます (1トランザクション)
func (r *gormVocabRepository) ReplaceAll(ctx context.Context, entries []model.VocabEntry) (int64, error) {
	logger := middleware.GetLogger(ctx)

	records := make([]model.VocabEntryRecord, 0, len(entries))
	positions := make(map[string]int)
	for _, e := range entries {
		letter := letterOf(e.Word)
		records = append(records, model.VocabEntryRecord{
			Letter:        letter,
			Position:      positions[letter],
			Word:          e.Word,
			PartOfSpeech:  e.PartOfSpeech,
			PhoneticUSIPA: e.PhoneticUS.IPA,
			PhoneticUS:    e.PhoneticUS.Text,
			PhoneticUKIPA: e.PhoneticUK.IPA,
			PhoneticUK:    e.PhoneticUK.Text,
			Senses:        e.Senses,
		})
		positions[letter]++
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.VocabEntryRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 100).Error
	})
	if err != nil {
		logger.Error("Error replacing vocab entries in DB", "error", err, "count", len(records))
		return 0, fmt.Errorf("gormVocabRepository.ReplaceAll: %w", err)
	}
	return int64(len(records)), nil
}

func (r *gormVocabRepository) FindByLetter(ctx context.Context, letter string) ([]model.VocabEntry, error) {
	logger := middleware.GetLogger(ctx)
	var records []model.VocabEntryRecord
	result := r.db.WithContext(ctx).
		Where("letter = ?", strings.ToLower(letter)).
		Order("position ASC").
		Find(&records)
	if result.Error != nil {
		logger.Error("Error finding vocab entries by letter in DB", "error", result.Error, "letter", letter)
		return nil, fmt.Errorf("gormVocabRepository.FindByLetter: %w", result.Error)
	}
	entries := make([]model.VocabEntry, 0, len(records))
	for i := range records {
		entries = append(entries, records[i].ToEntry())
	}
	return entries, nil
}

func (r *gormVocabRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.VocabEntryRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormVocabRepository.Count: %w", err)
	}
	return count, nil
}

// letterOf は単語の先頭文字 (小文字) を返す
func letterOf(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return ""
	}
	return string(unicode.ToLower(r))
}
