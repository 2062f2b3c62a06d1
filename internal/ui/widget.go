package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/floatodo/internal/mouse"
	"github.com/idilsaglam/floatodo/internal/todo"
)

// Screen geometry of the framed widget. Content starts inside the border
// (one row) and the border plus left padding (two cells).
const (
	originX = 2
	originY = 1

	headerLine    = 0
	inputLine     = 1
	separatorLine = 2
	listLine      = 3

	chromeRows = 6 // border*2 + header + input + separator + footer
	chromeCols = 4 // border*2 + padding*2

	minListRows   = 1
	minInnerWidth = 10

	defaultWidth  = 48
	defaultHeight = 20
)

const (
	regionInput      = "input"
	regionRow        = "row"
	regionMenuDelete = "menu-delete"
	regionMenuCancel = "menu-cancel"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// contextMenu is the pending "delete this row" action, drawn in the footer
// starting at column col.
type contextMenu struct {
	row int
	col int
}

// Options configure the widget.
type Options struct {
	Placeholder string
	Mouse       bool
	Theme       Theme
	Logger      *log.Logger
	// Clipboard receives copied todo text. Defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the Bubble Tea model of the todo widget. Every mutation goes to
// the store, and View repaints the whole list from it.
type Model struct {
	store  *todo.Store
	theme  Theme
	logger *log.Logger

	input textinput.Model
	keys  keyMap
	help  help.Model
	hits  *mouse.HitMap

	width, height int
	selected      int
	offset        int
	focus         focusArea
	menu          *contextMenu
	status        string
	mouse         bool
	copyText      func(string) error
}

// New builds the widget around store.
func New(store *todo.Store, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Theme.SymDone == "" {
		opts.Theme = DefaultTheme()
	}

	ti := textinput.New()
	ti.Prompt = "+ "
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 500
	ti.PromptStyle = opts.Theme.Accent
	ti.TextStyle = opts.Theme.Text
	ti.PlaceholderStyle = opts.Theme.Placeholder
	ti.Focus()

	h := help.New()
	h.Styles.ShortKey = opts.Theme.Muted
	h.Styles.ShortDesc = opts.Theme.Muted
	h.Styles.ShortSeparator = opts.Theme.Separator

	m := Model{
		store:    store,
		theme:    opts.Theme,
		logger:   opts.Logger,
		input:    ti,
		keys:     defaultKeyMap(),
		help:     h,
		hits:     mouse.NewHitMap(),
		mouse:    opts.Mouse,
		copyText: opts.Clipboard,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Run starts the widget on the terminal. After a clean exit it writes
// changes that a failed per-mutation save left off disk.
func Run(store *todo.Store, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	return run(store, opts, func(m tea.Model) error {
		_, err := tea.NewProgram(m, progOpts...).Run()
		return err
	})
}

func run(store *todo.Store, opts Options, start func(tea.Model) error) error {
	if err := start(New(store, opts)); err != nil {
		return fmt.Errorf("run widget: %w", err)
	}
	if !store.Dirty() {
		return nil
	}
	if err := store.Save(); err != nil && opts.Logger != nil {
		opts.Logger.Error("final save", "err", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		m.status = ""
		if key.Matches(msg, m.keys.Force) {
			return m, tea.Quit
		}
		if m.menu != nil {
			return m.updateMenu(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.deleteRow(m.menu.row)
	case key.Matches(msg, m.keys.Cancel):
		m.menu = nil
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.store.Append(m.input.Value()) {
			m.input.Reset()
			m.selected = m.store.Len() - 1
			m.reveal()
		}
		return m, nil
	case "tab", "shift+tab":
		return m.setFocus(focusList)
	case "up":
		m.move(-1)
		return m, nil
	case "down":
		m.move(1)
		return m, nil
	case "esc":
		if m.input.Value() != "" {
			m.input.Reset()
			return m, nil
		}
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Edit):
		return m.setFocus(focusInput)
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Toggle):
		m.store.Toggle(m.selected)
	case key.Matches(msg, m.keys.Delete):
		m.openMenu(m.selected, 0)
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.layoutHits()
	a := m.hits.Classify(msg)

	if m.menu != nil {
		if a.Type == mouse.ActionClick && a.Region.ID == regionMenuDelete {
			m.deleteRow(m.menu.row)
			return m, nil
		}
		if msg.Action == tea.MouseActionPress {
			m.menu = nil
		}
		return m, nil
	}

	switch a.Type {
	case mouse.ActionScrollUp:
		m.scroll(-1)
	case mouse.ActionScrollDown:
		m.scroll(1)
	case mouse.ActionClick:
		switch a.Region.ID {
		case regionRow:
			row := a.Region.Data.(int)
			m.selected = row
			m.store.Toggle(row)
		case regionInput:
			return m.setFocus(focusInput)
		}
	case mouse.ActionContext:
		if a.Region.ID == regionRow {
			row := a.Region.Data.(int)
			m.selected = row
			m.openMenu(row, a.X-originX)
		}
	}
	return m, nil
}

func (m Model) setFocus(f focusArea) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == focusInput {
		return m, m.input.Focus()
	}
	m.input.Blur()
	if m.selected >= m.store.Len() {
		m.selected = max(0, m.store.Len()-1)
	}
	m.reveal()
	return m, nil
}

// openMenu opens the delete menu for row with its left edge at column col
// of the footer, shifted left when it would not fit.
func (m *Model) openMenu(row, col int) {
	if _, ok := m.store.Item(row); !ok {
		return
	}
	del, cancel := m.menuButtons()
	room := m.innerWidth() - lipgloss.Width(del) - lipgloss.Width(cancel) - 1
	m.menu = &contextMenu{row: row, col: min(max(col, 0), max(room, 0))}
	m.logger.Debug("context menu", "row", row, "col", m.menu.col)
}

func (m *Model) deleteRow(row int) {
	m.menu = nil
	m.store.Delete(row)
	if m.selected >= m.store.Len() {
		m.selected = max(0, m.store.Len()-1)
	}
	m.clampOffset()
}

func (m *Model) copySelected() {
	it, ok := m.store.Item(m.selected)
	if !ok {
		return
	}
	if err := m.copyText(it.Text); err != nil {
		m.logger.Warn("copy to clipboard", "err", err)
		m.status = "copy failed"
		return
	}
	m.status = "copied"
}

func (m *Model) move(delta int) {
	n := m.store.Len()
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
	m.reveal()
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

// reveal scrolls so the selected row is visible.
func (m *Model) reveal() {
	rows := m.listRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	m.clampOffset()
}

func (m *Model) clampOffset() {
	maxOffset := max(0, m.store.Len()-m.listRows())
	m.offset = min(max(m.offset, 0), maxOffset)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	inner := m.innerWidth()
	m.input.Width = max(1, inner-lipgloss.Width(m.input.Prompt)-1)
	m.help.Width = inner
	m.reveal()
}

func (m Model) innerWidth() int { return max(minInnerWidth, m.width-chromeCols) }

func (m Model) listRows() int { return max(minListRows, m.height-chromeRows) }

func (m Model) overflow() bool { return m.store.Len() > m.listRows() }

func (m Model) footerLine() int { return listLine + m.listRows() }

// layoutHits registers the clickable regions of the current frame. It uses
// the same geometry as View, so a row region always carries the store index
// that is painted there.
func (m Model) layoutHits() {
	m.hits.Clear()
	inner := m.innerWidth()
	m.hits.AddRect(regionInput, originX, originY+inputLine, inner, 1, nil)

	rows := m.listRows()
	for j := 0; j < rows; j++ {
		idx := m.offset + j
		if idx >= m.store.Len() {
			break
		}
		m.hits.AddRect(regionRow, originX, originY+listLine+j, inner, 1, idx)
	}

	if m.menu != nil {
		del, cancel := m.menuButtons()
		x, y := originX+m.menu.col, originY+m.footerLine()
		dw, cw := lipgloss.Width(del), lipgloss.Width(cancel)
		m.hits.AddRect(regionMenuDelete, x, y, dw, 1, nil)
		m.hits.AddRect(regionMenuCancel, x+dw+1, y, cw, 1, nil)
	}
}

func (m Model) menuButtons() (string, string) {
	return m.theme.MenuItem.Render("Delete"), m.theme.MenuItem.Render("Cancel")
}

func (m Model) View() string {
	inner := m.innerWidth()
	lines := make([]string, 0, m.listRows()+4)

	done, pending := m.store.Stats()
	header := Header(m.theme, done, pending)
	if m.status != "" {
		header += "  " + m.theme.Muted.Render(m.status)
	}
	lines = append(lines, fit(header, inner))
	lines = append(lines, fit(m.input.View(), inner))
	lines = append(lines, m.theme.Separator.Render(strings.Repeat("─", inner)))
	lines = append(lines, m.listView(inner)...)
	lines = append(lines, fit(m.footerView(inner), inner))

	return m.theme.Frame.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func (m Model) listView(inner int) []string {
	rows := m.listRows()
	items := m.store.Items()
	out := make([]string, 0, rows)

	if len(items) == 0 {
		out = append(out, fit(m.theme.Muted.Render("  nothing to do"), inner))
		for len(out) < rows {
			out = append(out, "")
		}
		return out
	}

	rowWidth := inner
	bar := m.scrollbar(rows, len(items))
	if bar != nil {
		rowWidth = inner - 2
	}
	for j := 0; j < rows; j++ {
		idx := m.offset + j
		line := ""
		if idx < len(items) {
			prefix := "  "
			if idx == m.selected && (m.focus == focusList || m.menu != nil) {
				prefix = m.theme.Selected.Render("> ")
			}
			line = prefix + ItemLine(m.theme, items[idx], rowWidth-2)
		}
		if bar != nil {
			line = pad(line, rowWidth) + " " + bar[j]
		}
		out = append(out, line)
	}
	return out
}

// scrollbar returns one cell per visible row, or nil when everything fits.
func (m Model) scrollbar(rows, total int) []string {
	if total <= rows {
		return nil
	}
	thumb := max(1, rows*rows/total)
	pos := 0
	if total > rows {
		pos = m.offset * (rows - thumb) / (total - rows)
	}
	out := make([]string, rows)
	for j := range out {
		if j >= pos && j < pos+thumb {
			out[j] = m.theme.ScrollThumb.Render(m.theme.ThumbChar)
		} else {
			out[j] = m.theme.Scrollbar.Render(m.theme.BarChar)
		}
	}
	return out
}

func (m Model) footerView(inner int) string {
	if m.menu == nil {
		if m.focus == focusInput {
			return m.help.View(inputHelp(m.keys))
		}
		return m.help.View(listHelp(m.keys))
	}
	del, cancel := m.menuButtons()
	buttons := strings.Repeat(" ", m.menu.col) + del + " " + cancel
	label := ""
	if it, ok := m.store.Item(m.menu.row); ok {
		if room := inner - lipgloss.Width(buttons) - 2; room > 0 {
			label = "  " + m.theme.Muted.Render(ansi.Truncate(oneLine(it.Text), room, "…"))
		}
	}
	return buttons + label
}

func fit(s string, width int) string { return ansi.Truncate(s, width, "") }

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
