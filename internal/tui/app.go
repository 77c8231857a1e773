package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go_4_vocab_learn/internal/service"
)

type screen int

const (
	screenMenu screen = iota
	screenGoal
	screenTopics
)

type menuEntry struct {
	title, desc string
	target      screen
	quit        bool
}

var menuEntries = []menuEntry{
	{title: "Learning goal", desc: "Pick a goal and your daily study time", target: screenGoal},
	{title: "Topics", desc: "Follow the topics you want to study", target: screenTopics},
	{title: "Quit", desc: "Exit the application", quit: true},
}

// App は画面遷移を受け持つルートモデルです。
// 子画面の状態は戻るたびに破棄されます。
type App struct {
	ctx      context.Context
	profiles service.ProfileService
	help     help.Model

	screen screen
	cursor int
	goal   GoalModel
	topics TopicsModel
	width  int
	height int
}

func NewApp(ctx context.Context, profiles service.ProfileService) App {
	if profiles == nil {
		panic("tui.NewApp: profiles is nil")
	}
	return App{
		ctx:      ctx,
		profiles: profiles,
		help:     help.New(),
		screen:   screenMenu,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		return a, nil
	case backMsg:
		a.screen = screenMenu
		a.goal = GoalModel{}
		a.topics = TopicsModel{}
		return a, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenGoal:
		a.goal, cmd = a.goal.Update(msg)
	case screenTopics:
		a.topics, cmd = a.topics.Update(msg)
	default:
		return a.updateMenu(msg)
	}
	return a, cmd
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if a.cursor < len(menuEntries)-1 {
			a.cursor++
		}
	case key.Matches(keyMsg, keys.Quit):
		return a, tea.Quit
	case key.Matches(keyMsg, keys.Select):
		entry := menuEntries[a.cursor]
		if entry.quit {
			return a, tea.Quit
		}
		a.open(entry.target)
	}
	return a, nil
}

func (a *App) open(target screen) {
	a.screen = target
	switch target {
	case screenGoal:
		a.goal = NewGoalModel(a.ctx, a.profiles)
	case screenTopics:
		a.topics = NewTopicsModel(a.ctx, a.profiles)
	}
}

func (a App) View() string {
	switch a.screen {
	case screenGoal:
		return a.goal.View()
	case screenTopics:
		return a.topics.View()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Vocab Learn") + "\n")
	if p, ok := a.profiles.Current(); ok && p.IsLoggedIn {
		b.WriteString(StatusInfoStyle.Render("Signed in as "+p.Name) + "\n\n")
	} else {
		b.WriteString(StatusErrorStyle.Render("Not signed in, changes cannot be saved") + "\n\n")
	}

	for i, e := range menuEntries {
		if i == a.cursor {
			b.WriteString(CursorStyle.Render("> "+e.title) + "\n")
			b.WriteString(DescStyle.Render(e.desc) + "\n")
			continue
		}
		b.WriteString("  " + e.title + "\n")
	}
	b.WriteString("\n" + a.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Select, keys.Quit}))

	if a.width > 0 {
		return lipgloss.NewStyle().MaxWidth(a.width).Render(b.String())
	}
	return b.String()
}
