package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"go_4_vocab_learn/internal/model"
)

// backMsg は前の画面へ戻る合図 (ペイロードなし)
type backMsg struct{}

// saveFailedMsg は保存に失敗したときに画面へ返されます
type saveFailedMsg struct {
	err error
}

func back() tea.Msg {
	return backMsg{}
}

// statusText はステータス行に出すエラーメッセージを組み立てます
func statusText(err error) string {
	var appErr *model.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr.Detail.Message
	case errors.Is(err, model.ErrUnauthenticated):
		return "Not signed in. Sign in before saving."
	case errors.Is(err, model.ErrPersistence):
		return "Could not write to storage. Your choice is kept for this session, try saving again."
	case errors.Is(err, model.ErrNotInitialized):
		return "Profile store is not ready yet."
	default:
		return "Save failed: " + err.Error()
	}
}
