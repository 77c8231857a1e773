// internal/vocab/store.go
package vocab

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sync"
	"unicode"
	"unicode/utf8"

	"go_4_vocab_learn/internal/model"
)

//go:embed data/*.json
var embedded embed.FS

// Letters はパーティションの並び順 (a..z)
const Letters = "abcdefghijklmnopqrstuvwxyz"

// Store は文字ごとのパーティションを1つのリストにまとめた単語帳です。
// 初回の問い合わせでまとめて読み込み、以降はプロセス終了までキャッシュします。
type Store struct {
	fsys fs.FS
	dir  string

	once       sync.Once
	entries    []model.VocabEntry
	partitions map[string]int
	err        error
}

var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
)

// Default は埋め込みデータを使うストアを返します。
func Default() *Store {
	defaultStoreOnce.Do(func() {
		defaultStore = NewStore(embedded, "data")
	})
	return defaultStore
}

// NewStore は fsys の dir 配下にある a.json .. z.json を読むストアを生成します。
func NewStore(fsys fs.FS, dir string) *Store {
	return &Store{fsys: fsys, dir: dir}
}

func (s *Store) load() {
	s.once.Do(func() {
		s.partitions = make(map[string]int, len(Letters))
		for _, r := range Letters {
			letter := string(r)
			name := path.Join(s.dir, letter+".json")
			raw, err := fs.ReadFile(s.fsys, name)
			if err != nil {
				s.err = fmt.Errorf("vocab.Store: read partition %q: %w", name, err)
				return
			}
			var part []model.VocabEntry
			if err := json.Unmarshal(raw, &part); err != nil {
				s.err = fmt.Errorf("vocab.Store: parse partition %q: %w", name, err)
				return
			}
			s.partitions[letter] = len(part)
			s.entries = append(s.entries, part...)
		}
	})
}

// LoadAll は全パーティションを a→z の順に連結したものを返します。
// 返すスライスと各単語の語義・例文は呼び出しごとに新しく確保されます。
func (s *Store) LoadAll() ([]model.VocabEntry, error) {
	s.load()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.VocabEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out, nil
}

// LoadByLetter は先頭文字が letter と一致する (大文字小文字は区別しない) 単語を返します。
// letter が1文字でない場合や一致する単語がない場合は空のスライスを返します。
func (s *Store) LoadByLetter(letter string) ([]model.VocabEntry, error) {
	all, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	out := []model.VocabEntry{}
	if utf8.RuneCountInString(letter) != 1 {
		return out, nil
	}
	want, _ := utf8.DecodeRuneInString(letter)
	want = unicode.ToLower(want)
	for _, e := range all {
		first, size := utf8.DecodeRuneInString(e.Word)
		if size == 0 {
			continue
		}
		if unicode.ToLower(first) == want {
			out = append(out, e)
		}
	}
	return out, nil
}

// Stats はパーティションごとの単語数を返します。
func (s *Store) Stats() (model.VocabStatsResponse, error) {
	s.load()
	if s.err != nil {
		return model.VocabStatsResponse{}, s.err
	}
	parts := make(map[string]int, len(s.partitions))
	for k, v := range s.partitions {
		parts[k] = v
	}
	return model.VocabStatsResponse{Total: len(s.entries), Partitions: parts}, nil
}
