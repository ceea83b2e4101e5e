package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	typ      lipgloss.Style
	value    lipgloss.Style
	selected lipgloss.Style
	result   lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			title:    plain.Bold(true),
			typ:      plain,
			value:    plain,
			selected: plain,
			result:   plain,
			err:      plain,
			help:     plain,
		}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		typ: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")),
		value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		result: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90")),
		err: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
	}
}
