// internal/handlers/vocab_handler_test.go
package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_4_vocab_learn/internal/handlers"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/vocab"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabHandler_GetVocab(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	all, err := vocab.Default().LoadAll()
	require.NoError(t, err)

	tests := []struct {
		name      string
		path      string
		wantCount int
		check     func(t *testing.T, entries []model.VocabEntry)
	}{
		{name: "全件", path: "/api/v1/vocab", wantCount: len(all)},
		{
			name: "文字で絞り込み (大文字)", path: "/api/v1/vocab?letter=A",
			wantCount: -1,
			check: func(t *testing.T, entries []model.VocabEntry) {
				require.NotEmpty(t, entries)
				for _, e := range entries {
					assert.Contains(t, "aA", e.Word[:1])
				}
			},
		},
		{name: "2文字は空", path: "/api/v1/vocab?letter=ab", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: tt.path},
				httpResponseExpectations{ExpectedCode: http.StatusOK})
			entries := decodeBody[[]model.VocabEntry](t, body)
			require.NotNil(t, entries)
			if tt.wantCount >= 0 {
				assert.Len(t, entries, tt.wantCount)
			}
			if tt.check != nil {
				tt.check(t, entries)
			}
		})
	}
}

func TestVocabHandler_GetVocabByLetter(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	body := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/vocab/letters/z"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	want, err := vocab.Default().LoadByLetter("z")
	require.NoError(t, err)
	assert.Equal(t, want, decodeBody[[]model.VocabEntry](t, body))

	sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/vocab/letters/zz"},
		httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_URL_PARAM"})
}

func TestVocabHandler_GetStats(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	body := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/vocab/stats"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	stats := decodeBody[model.VocabStatsResponse](t, body)
	assert.Len(t, stats.Partitions, 26)
	assert.Positive(t, stats.Total)
}

// brokenVocab は読み込みに失敗する単語帳
type brokenVocab struct{}

func (brokenVocab) LoadAll() ([]model.VocabEntry, error) {
	return nil, errors.New("partition k.json missing")
}

func (brokenVocab) LoadByLetter(string) ([]model.VocabEntry, error) {
	return nil, errors.New("partition k.json missing")
}

func (brokenVocab) Stats() (model.VocabStatsResponse, error) {
	return model.VocabStatsResponse{}, errors.New("partition k.json missing")
}

func TestVocabHandler_LoadFailure(t *testing.T) {
	h := handlers.NewVocabHandler(brokenVocab{})
	r := chi.NewRouter()
	r.Get("/vocab", h.GetVocab)
	r.Get("/vocab/stats", h.GetStats)
	server := httptest.NewServer(r)
	defer server.Close()

	sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/vocab"},
		httpResponseExpectations{ExpectedCode: http.StatusInternalServerError})
	sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/vocab/stats"},
		httpResponseExpectations{ExpectedCode: http.StatusInternalServerError})
}

func TestNewVocabHandler_NilPanics(t *testing.T) {
	assert.Panics(t, func() { handlers.NewVocabHandler(nil) })
}

func TestOptions(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	body := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/options/topics"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.Equal(t, model.Topics, decodeBody[[]model.Option](t, body))

	body = sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/options/goals"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	goals := decodeBody[struct {
		Goals        []model.Option `json:"goals"`
		DailyMinutes []int          `json:"daily_minutes"`
	}](t, body)
	assert.Equal(t, model.LearningGoals, goals.Goals)
	assert.Equal(t, []int{5, 10, 15, 30}, goals.DailyMinutes)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	body := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/health"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.Equal(t, "OK", string(body))
}
