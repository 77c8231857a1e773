package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/service"
)

// TopicsModel はフォローするトピックを選ぶ画面
type TopicsModel struct {
	ctx      context.Context
	profiles service.ProfileService
	help     help.Model

	cursor   int
	followed map[string]bool
	status   string
}

func NewTopicsModel(ctx context.Context, profiles service.ProfileService) TopicsModel {
	if profiles == nil {
		panic("tui.NewTopicsModel: profiles is nil")
	}
	m := TopicsModel{
		ctx:      ctx,
		profiles: profiles,
		help:     help.New(),
		followed: make(map[string]bool),
	}
	if p, ok := profiles.Current(); ok {
		for _, id := range p.FollowedTopics {
			m.followed[id] = true
		}
	}
	return m
}

func (m TopicsModel) Init() tea.Cmd {
	return nil
}

func (m TopicsModel) Update(msg tea.Msg) (TopicsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case saveFailedMsg:
		m.status = statusText(msg.err)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(model.Topics)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			id := model.Topics[m.cursor].ID
			m.followed[id] = !m.followed[id]
			m.status = ""
		case key.Matches(msg, keys.Save):
			return m, m.save()
		case key.Matches(msg, keys.Back):
			return m, back
		}
	}
	return m, nil
}

// Followed はフォロー中のトピック ID を一覧の並び順で返します
func (m TopicsModel) Followed() []string {
	out := []string{}
	for _, t := range model.Topics {
		if m.followed[t.ID] {
			out = append(out, t.ID)
		}
	}
	return out
}

func (m TopicsModel) save() tea.Cmd {
	ctx, profiles, topics := m.ctx, m.profiles, m.Followed()
	return func() tea.Msg {
		if err := profiles.UpdateFollowedTopics(ctx, topics); err != nil {
			return saveFailedMsg{err: err}
		}
		return backMsg{}
	}
}

func (m TopicsModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Follow the topics you like") + "\n\n")

	for i, t := range model.Topics {
		pointer := "  "
		if i == m.cursor {
			pointer = CursorStyle.Render("> ")
		}
		line := "[ ] " + t.Label
		if m.followed[t.ID] {
			line = SelectedStyle.Render("[✓] " + t.Label)
		}
		b.WriteString(pointer + line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + StatusErrorStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Toggle, keys.Save, keys.Back}))
	return b.String()
}
