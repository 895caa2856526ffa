package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Dialog   lipgloss.Style

	Selected lipgloss.Style
	Editing  lipgloss.Style
	Valid    lipgloss.Style
	Invalid  lipgloss.Style
	Toast    lipgloss.Style
	Error    lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Dialog: lipgloss.NewStyle().
			Padding(1, 3).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("204")),

		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		Editing:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Valid:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Invalid:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Toast:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}
