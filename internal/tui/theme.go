package tui

import "github.com/charmbracelet/lipgloss"

var (
	Accent    = lipgloss.Color("#4FB3FF")
	DimAccent = lipgloss.Color("#2A5D84")
	Success   = lipgloss.Color("#3DDC84")
	Danger    = lipgloss.Color("#FF5F57")
	LightGray = lipgloss.Color("#aaaaaa")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Padding(0, 1)

	CursorStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	DescStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			PaddingLeft(4)

	DropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimAccent).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(Danger)

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Italic(true)
)
