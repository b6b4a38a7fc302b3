package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Plain                                         bool // no escapes at all, not even dim/strike
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked                      string
	Open, Closed                                  string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	BarFull, BarEmpty                             string
}

const DefaultTheme = "classic"

var themes = map[string]Theme{
	"classic": {
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		Open: "▾", Closed: "▸",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		BarFull: "█", BarEmpty: "░",
	},
	"neon": {
		Name:  "neon",
		Title: "\033[95m", // bright magenta
		Muted: fgGray, Accent: "\033[96m",
		Success: fgGreen, Error: fgRed, Pending: "\033[93m",
		BoxUnchecked: "◻", BoxChecked: "◼",
		Open: "◆", Closed: "◇",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		BarFull: "█", BarEmpty: "░",
	},
	"mono": {
		Name:         "mono",
		Plain:        true,
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		Open: "-", Closed: "+",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		BarFull: "#", BarEmpty: ".",
	},
}

var current = themes[DefaultTheme]

// Names lists the known themes in cycling order.
func Names() []string { return []string{"classic", "neon", "mono"} }

// Known reports whether name is a theme.
func Known(name string) bool {
	_, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// SetTheme switches the current theme; unknown names fall back to classic.
func SetTheme(name string) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		t = themes[DefaultTheme]
	}
	current = t
}

// Next returns the theme after name in Names, wrapping around.
func Next(name string) string {
	names := Names()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Expose what renderers need
func Current() Theme { return current }
