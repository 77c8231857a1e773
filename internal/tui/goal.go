package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/service"
)

// GoalModel は学習目標と1日の学習時間を選ぶ画面
type GoalModel struct {
	ctx      context.Context
	profiles service.ProfileService
	help     help.Model

	cursor        int
	selected      int // -1 は未選択
	dropdownOpen  bool
	minutesCursor int
	minutes       int // 0 は未選択
	status        string
}

// NewGoalModel は現在のプロフィールの値を初期選択にして画面を作ります。
func NewGoalModel(ctx context.Context, profiles service.ProfileService) GoalModel {
	if profiles == nil {
		panic("tui.NewGoalModel: profiles is nil")
	}
	m := GoalModel{
		ctx:      ctx,
		profiles: profiles,
		help:     help.New(),
		selected: -1,
	}
	if p, ok := profiles.Current(); ok {
		for i, g := range model.LearningGoals {
			if g.ID == p.Goal {
				m.selected = i
				m.cursor = i
			}
		}
		m.minutes = p.DailyMinutes
	}
	return m
}

func (m GoalModel) Init() tea.Cmd {
	return nil
}

func (m GoalModel) Update(msg tea.Msg) (GoalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case saveFailedMsg:
		m.status = statusText(msg.err)
		return m, nil
	case tea.KeyMsg:
		if m.dropdownOpen {
			return m.updateDropdown(msg)
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(model.LearningGoals)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Select):
			m.selected = m.cursor
			m.status = ""
		case key.Matches(msg, keys.Dropdown):
			m.dropdownOpen = true
			m.minutesCursor = 0
			for i, v := range model.DailyMinutesOptions {
				if v == m.minutes {
					m.minutesCursor = i
				}
			}
		case key.Matches(msg, keys.Save):
			return m.save()
		case key.Matches(msg, keys.Back):
			return m, back
		}
	}
	return m, nil
}

func (m GoalModel) updateDropdown(msg tea.KeyMsg) (GoalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.minutesCursor > 0 {
			m.minutesCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.minutesCursor < len(model.DailyMinutesOptions)-1 {
			m.minutesCursor++
		}
	case key.Matches(msg, keys.Select):
		m.minutes = model.DailyMinutesOptions[m.minutesCursor]
		m.dropdownOpen = false
		m.status = ""
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Dropdown):
		m.dropdownOpen = false
	}
	return m, nil
}

// save はプロフィールに保存してから戻る Cmd を返します。失敗時は画面に留まります。
func (m GoalModel) save() (GoalModel, tea.Cmd) {
	if m.selected < 0 {
		m.status = "Choose a learning goal first."
		return m, nil
	}
	if m.minutes == 0 {
		m.status = "Choose how many minutes a day you want to study."
		return m, nil
	}

	ctx, profiles := m.ctx, m.profiles
	goal, minutes := model.LearningGoals[m.selected].ID, m.minutes
	return m, func() tea.Msg {
		if err := profiles.UpdateGoal(ctx, goal, minutes); err != nil {
			return saveFailedMsg{err: err}
		}
		return backMsg{}
	}
}

func (m GoalModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("What is your learning goal?") + "\n\n")

	for i, g := range model.LearningGoals {
		pointer := "  "
		if i == m.cursor && !m.dropdownOpen {
			pointer = CursorStyle.Render("> ")
		}
		mark := "○ "
		label := g.Label
		if i == m.selected {
			mark = SelectedStyle.Render("● ")
			label = SelectedStyle.Render(label)
		}
		b.WriteString(pointer + mark + label + "\n")
		if i == m.cursor {
			b.WriteString(DescStyle.Render(g.Description) + "\n")
		}
	}

	current := "choose"
	if m.minutes > 0 {
		current = fmt.Sprintf("%d min", m.minutes)
	}
	b.WriteString(fmt.Sprintf("\nDaily study time: [ %s ▾ ]\n", current))
	if m.dropdownOpen {
		var opts strings.Builder
		for i, v := range model.DailyMinutesOptions {
			line := fmt.Sprintf("%d min", v)
			if i == m.minutesCursor {
				line = CursorStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			opts.WriteString(line)
			if i < len(model.DailyMinutesOptions)-1 {
				opts.WriteString("\n")
			}
		}
		b.WriteString(DropdownStyle.Render(opts.String()) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + StatusErrorStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Select, keys.Dropdown, keys.Save, keys.Back}))
	return b.String()
}
