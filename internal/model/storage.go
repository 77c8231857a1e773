// internal/model/storage.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// KeyValue は端末ストレージ相当の key-value テーブル
type KeyValue struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"uniqueIndex;size:100;not null"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KeyValue) TableName() string {
	return "key_values"
}

// VocabEntryRecord はビルド済み単語DB (vocab.db) の1行
type VocabEntryRecord struct {
	ID            uint                       `gorm:"primaryKey"`
	Letter        string                     `gorm:"type:varchar(1);not null;index:idx_letter_position"`
	Position      int                        `gorm:"not null;index:idx_letter_position"`
	Word          string                     `gorm:"not null;index"`
	PartOfSpeech  string                     `gorm:"not null"`
	PhoneticUSIPA string                     `gorm:"column:phonetic_us_ipa"`
	PhoneticUS    string                     `gorm:"column:phonetic_us_text"`
	PhoneticUKIPA string                     `gorm:"column:phonetic_uk_ipa"`
	PhoneticUK    string                     `gorm:"column:phonetic_uk_text"`
	Senses        datatypes.JSONSlice[Sense] `gorm:"not null"`
}

func (VocabEntryRecord) TableName() string {
	return "vocab_entries"
}

// ToEntry はレコードを VocabEntry に戻す
func (r *VocabEntryRecord) ToEntry() VocabEntry {
	return VocabEntry{
		Word:         r.Word,
		PartOfSpeech: r.PartOfSpeech,
		PhoneticUS:   Phonetic{IPA: r.PhoneticUSIPA, Text: r.PhoneticUS},
		PhoneticUK:   Phonetic{IPA: r.PhoneticUKIPA, Text: r.PhoneticUK},
		Senses:       []Sense(r.Senses),
	}
}
