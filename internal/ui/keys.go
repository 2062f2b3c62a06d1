package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Focus  key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Copy   key.Binding
	Edit   key.Binding
	Quit   key.Binding
	Force  key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Focus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter", "x"), key.WithHelp("space", "toggle")),
		Delete: key.NewBinding(key.WithKeys("d", "delete", "backspace"), key.WithHelp("d", "delete")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Edit:   key.NewBinding(key.WithKeys("a", "i", "/"), key.WithHelp("a", "type")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Force:  key.NewBinding(key.WithKeys("ctrl+c")),

		Confirm: key.NewBinding(key.WithKeys("enter", "y", "d"), key.WithHelp("enter", "delete")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "n", "q"), key.WithHelp("esc", "cancel")),
	}
}

// inputHelp is shown while the text field has focus.
type inputHelp keyMap

func (k inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Focus, k.Up, k.Down}
}

func (k inputHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// listHelp is shown while the list has focus.
type listHelp keyMap

func (k listHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Copy, k.Edit, k.Quit}
}

func (k listHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
