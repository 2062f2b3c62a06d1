package ui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the palette, glyphs and frame used by every renderer.
type Theme struct {
	Frame       lipgloss.Style
	Title       lipgloss.Style
	Text        lipgloss.Style
	Done        lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Selected    lipgloss.Style
	Separator   lipgloss.Style
	Placeholder lipgloss.Style
	Scrollbar   lipgloss.Style
	ScrollThumb lipgloss.Style
	MenuItem    lipgloss.Style

	SymDone, SymPending string
	SymOK, SymFail      string
	ThumbChar, BarChar  string
}

// DefaultTheme is the dark widget palette.
func DefaultTheme() Theme {
	text := lipgloss.Color("#E8E8E8")
	accent := lipgloss.Color("#7E8DFF")
	muted := lipgloss.Color("#888888")
	return Theme{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333")).
			Padding(0, 1),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(text),
		Text:        lipgloss.NewStyle().Foreground(text),
		Done:        lipgloss.NewStyle().Foreground(muted).Faint(true),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Accent:      lipgloss.NewStyle().Foreground(accent),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Scrollbar:   lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")),
		ScrollThumb: lipgloss.NewStyle().Foreground(accent),
		MenuItem:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(accent).Padding(0, 1),

		SymDone: "✓", SymPending: "○",
		SymOK: "✔", SymFail: "✖",
		ThumbChar: "┃", BarChar: "│",
	}
}

// MonoTheme draws with attributes and ASCII glyphs only.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1),
		Title:       plain.Bold(true),
		Text:        plain,
		Done:        plain.Faint(true),
		Muted:       plain.Faint(true),
		Accent:      plain,
		Success:     plain,
		Error:       plain.Bold(true),
		Selected:    plain.Bold(true),
		Separator:   plain,
		Placeholder: plain.Faint(true),
		Scrollbar:   plain,
		ScrollThumb: plain.Bold(true),
		MenuItem:    plain.Reverse(true).Padding(0, 1),

		SymDone: "x", SymPending: "-",
		SymOK: "ok", SymFail: "error:",
		ThumbChar: "#", BarChar: "|",
	}
}

// ThemeFor picks the theme matching the colour setting.
func ThemeFor(noColor bool) Theme {
	if noColor {
		return MonoTheme()
	}
	return DefaultTheme()
}
