// internal/handlers/vocab_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// VocabSource は単語帳の読み出し口です (*vocab.Store が満たす)
type VocabSource interface {
	LoadAll() ([]model.VocabEntry, error)
	LoadByLetter(letter string) ([]model.VocabEntry, error)
	Stats() (model.VocabStatsResponse, error)
}

type VocabHandler struct {
	store VocabSource
}

func NewVocabHandler(store VocabSource) *VocabHandler {
	if store == nil {
		panic("handlers.NewVocabHandler: store is nil")
	}
	return &VocabHandler{store: store}
}

// GetVocab は全単語、または ?letter= で絞り込んだ単語を返します
func (h *VocabHandler) GetVocab(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetVocab"))

	var (
		entries []model.VocabEntry
		err     error
	)
	if letter := r.URL.Query().Get("letter"); letter != "" {
		logger = logger.With(slog.String("letter", letter))
		entries, err = h.store.LoadByLetter(letter)
	} else {
		entries, err = h.store.LoadAll()
	}
	if err != nil {
		logger.Error("Failed to load vocabulary", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Vocabulary listed", slog.Int("count", len(entries)))
	webutil.RespondWithJSON(w, http.StatusOK, entries, logger)
}

// GetVocabByLetter は /vocab/letters/{letter} 用。1文字でなければ 400 を返します。
func (h *VocabHandler) GetVocabByLetter(w http.ResponseWriter, r *http.Request) {
	letter := chi.URLParam(r, "letter")
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetVocabByLetter"), slog.String("letter", letter))

	if utf8.RuneCountInString(letter) != 1 {
		logger.Warn("Invalid letter in URL")
		appErr := model.NewAppError("INVALID_URL_PARAM", "letterには1文字を指定してください。", "letter", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	entries, err := h.store.LoadByLetter(letter)
	if err != nil {
		logger.Error("Failed to load vocabulary partition", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Vocabulary listed by letter", slog.Int("count", len(entries)))
	webutil.RespondWithJSON(w, http.StatusOK, entries, logger)
}

func (h *VocabHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStats"))

	stats, err := h.store.Stats()
	if err != nil {
		logger.Error("Failed to compute vocabulary stats", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
