package session

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	address   lipgloss.Style
	detail    lipgloss.Style
	label     lipgloss.Style
	active    lipgloss.Style
	pending   lipgloss.Style
	failed    lipgloss.Style
	inactive  lipgloss.Style
	operation lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		address:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		pending:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		failed:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		inactive:  lipgloss.NewStyle().Faint(true),
		operation: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
