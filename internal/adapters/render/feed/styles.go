package feed

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	author  lipgloss.Style
	content lipgloss.Style
	meta    lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	warning lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		author:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		content: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
