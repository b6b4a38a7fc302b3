package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/v-s-abhishek/PickList/internal/ui"
)

// ------- styling helpers (Lip Gloss), one set per theme -------
type styles struct {
	title    lipgloss.Style
	success  lipgloss.Style
	pending  lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	errorS   lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	help     lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	border   lipgloss.TerminalColor

	boxChecked, boxUnchecked string
	open, closed             string
}

func newStyles(theme string) styles {
	ui.SetTheme(theme)
	t := ui.Current()
	s := styles{
		title:    lipgloss.NewStyle().Bold(true),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		muted:    lipgloss.NewStyle().Faint(true),
		errorS:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		help:     lipgloss.NewStyle().Faint(true),
		tab:      lipgloss.NewStyle().Padding(0, 1),
		tabOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true),
		border:   lipgloss.Color("8"),

		boxChecked:   t.BoxChecked,
		boxUnchecked: t.BoxUnchecked,
		open:         t.Open,
		closed:       t.Closed,
	}
	switch t.Name {
	case "neon":
		s.title = s.title.Foreground(lipgloss.Color("201"))
		s.accent = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
		s.pending = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
		s.tabOn = s.tabOn.Foreground(lipgloss.Color("201"))
		s.border = lipgloss.Color("93")
	case "mono":
		plain := lipgloss.NewStyle()
		s.success, s.pending, s.accent, s.errorS = plain, plain, plain, plain.Bold(true)
		s.border = lipgloss.NoColor{}
	}
	return s
}

func (s styles) panel(inner string, width int) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.border).
		Padding(0, 1)
	if width > 4 {
		border = border.Width(width - 2)
	}
	return border.Render(inner)
}

func (s styles) inputBox(inner string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.border).
		Padding(0, 1).
		Render(inner)
}
