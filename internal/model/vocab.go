// internal/model/vocab.go
package model

// Phonetic は発音記号 (IPA) と読みやすい表記のペア
type Phonetic struct {
	IPA  string `json:"ipa"`
	Text string `json:"text"`
}

// Example は例文と参照タグ
type Example struct {
	Sentence string `json:"sentence"`
	CrossRef string `json:"cross_ref"`
}

// Sense は単語の語義
type Sense struct {
	Definition string    `json:"definition"`
	Examples   []Example `json:"examples"`
}

// VocabEntry は辞書の1単語分のレコードです。読み込み後は変更されません。
type VocabEntry struct {
	Word         string   `json:"word"`
	PartOfSpeech string   `json:"pos"`
	PhoneticUS   Phonetic `json:"phonetic_us"`
	PhoneticUK   Phonetic `json:"phonetic_uk"`
	Senses       []Sense  `json:"senses"`
}

// Clone は語義と例文のスライスまで複製したコピーを返す
func (e VocabEntry) Clone() VocabEntry {
	if e.Senses == nil {
		return e
	}
	senses := make([]Sense, len(e.Senses))
	for i, sense := range e.Senses {
		senses[i] = sense
		if sense.Examples != nil {
			senses[i].Examples = append([]Example(nil), sense.Examples...)
		}
	}
	e.Senses = senses
	return e
}

// VocabStatsResponse は文字ごとの単語数
type VocabStatsResponse struct {
	Total      int            `json:"total"`
	Partitions map[string]int `json:"partitions"`
}
