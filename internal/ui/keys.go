package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of the admin table
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Search         key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	DeleteSelected key.Binding
	Edit           key.Binding
	NextPage       key.Binding
	PrevPage       key.Binding
	FirstPage      key.Binding
	LastPage       key.Binding
	GotoPage       key.Binding
	Reload         key.Binding
	Help           key.Binding
	Quit           key.Binding

	// Active while searching or editing
	Accept    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             newBinding([]string{"up", "k"}, "up", "↑/k"),
		Down:           newBinding([]string{"down", "j"}, "down", "↓/j"),
		Search:         newBinding([]string{"/"}, "search", "/"),
		Toggle:         newBinding([]string{" ", "x"}, "select", "space"),
		Delete:         newBinding([]string{"d"}, "delete", "d"),
		DeleteSelected: newBinding([]string{"D"}, "delete selected", "D"),
		Edit:           newBinding([]string{"e", "enter"}, "edit", "e"),
		NextPage:       newBinding([]string{"n", "right"}, "next page", "n/→"),
		PrevPage:       newBinding([]string{"p", "left"}, "prev page", "p/←"),
		FirstPage:      newBinding([]string{"home", "g"}, "first page", "g"),
		LastPage:       newBinding([]string{"end", "G"}, "last page", "G"),
		GotoPage:       newBinding([]string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "go to page", "1-9"),
		Reload:         newBinding([]string{"r"}, "reload", "r"),
		Help:           newBinding([]string{"?"}, "help", "?"),
		Quit:           newBinding([]string{"q", "ctrl+c"}, "quit", "q"),
		Accept:         newBinding([]string{"enter"}, "save", "enter"),
		Cancel:         newBinding([]string{"esc"}, "cancel", "esc"),
		NextField:      newBinding([]string{"tab"}, "next field", "tab"),
		PrevField:      newBinding([]string{"shift+tab"}, "prev field", "shift+tab"),
	}
}

func newBinding(keys []string, help, display string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(display, help),
	)
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Toggle, k.Edit, k.Delete, k.NextPage, k.PrevPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.GotoPage},
		{k.Search, k.Toggle, k.Delete, k.DeleteSelected},
		{k.Edit, k.NextField, k.Accept, k.Cancel},
		{k.Reload, k.Help, k.Quit},
	}
}
