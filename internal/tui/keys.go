package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// listKeys are the checklist screen bindings; their help text feeds the
// footer.
type listKeys struct {
	Up, Down     key.Binding
	Toggle, Fold key.Binding
	AddItem      key.Binding
	AddCategory  key.Binding
	Rename       key.Binding
	Delete       key.Binding
	Theme        key.Binding
	Logout       key.Binding
	Home         key.Binding
	Quit         key.Binding
}

func newListKeys() listKeys {
	return listKeys{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pack/fold")),
		Fold:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "fold")),
		AddItem:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		AddCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add category")),
		Rename:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Logout:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "log out")),
		Home:        key.NewBinding(key.WithKeys("h", "esc"), key.WithHelp("h", "home")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.AddItem, k.AddCategory,
		k.Rename, k.Delete, k.Theme, k.Home, k.Logout, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Fold},
		{k.AddItem, k.AddCategory, k.Rename, k.Delete},
		{k.Theme, k.Home, k.Logout, k.Quit},
	}
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	return h
}
