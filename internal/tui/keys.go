package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the form's keybindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextCol  key.Binding
	PrevCol  key.Binding
	Left     key.Binding
	Right    key.Binding
	Edit     key.Binding
	Add      key.Binding
	Delete   key.Binding
	Close    key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	ShowHelp key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextCol:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevCol:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev selector")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next selector")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Close:    key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc/q", "close")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		ShowHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextCol, k.Edit, k.Add, k.Delete, k.Close, k.ShowHelp}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextCol, k.PrevCol},
		{k.Left, k.Right, k.Edit, k.Add, k.Delete},
		{k.Close, k.ShowHelp},
	}
}
