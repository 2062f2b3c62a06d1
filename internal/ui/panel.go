package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/floatodo/internal/model"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := done * 100 / total
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines with the theme border.
func Panel(t Theme, lines []string) string {
	return t.Frame.Render(strings.Join(lines, "\n"))
}

// Header is the one-line summary shown above a list.
func Header(t Theme, done, pending int) string {
	return fmt.Sprintf("%s   %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Accent.Render(t.SymPending), pending,
	)
}

// ItemLine renders one todo as glyph + text, truncated to width cells.
// Completed items use the dimmed style.
func ItemLine(t Theme, it model.Item, width int) string {
	glyph, style := t.SymPending, t.Text
	if it.Completed {
		glyph, style = t.SymDone, t.Done
	}
	text := oneLine(it.Text)
	if width > 0 {
		avail := width - ansi.StringWidth(glyph) - 1
		if avail < 1 {
			avail = 1
		}
		text = ansi.Truncate(text, avail, "…")
	}
	return style.Render(glyph + " " + text)
}

// oneLine replaces control characters such as newlines and tabs with
// spaces so an item always paints as a single row.
func oneLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// ListLines renders items with 1-based indexes, as the ls command prints them.
func ListLines(t Theme, items []model.Item, width int) []string {
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		out = append(out, IndexedLine(t, i, it, width))
	}
	return out
}

// IndexedLine renders item i prefixed with its 1-based index.
func IndexedLine(t Theme, i int, it model.Item, width int) string {
	idx := fmt.Sprintf("%2d.", i+1)
	return t.Muted.Render(idx) + " " + ItemLine(t, it, width-len(idx)-1)
}
