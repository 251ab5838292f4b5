package tui

import "github.com/charmbracelet/bubbles/key"

// journalKeys are the bindings shared by every screen; menu digits are handled separately.
type journalKeys struct {
	Up, Down, Enter, Back, Quit, Help key.Binding
}

func (k journalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Back, k.Quit, k.Help},
	}
}

func newJournalKeys() journalKeys {
	bind := func(help string, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
	}
	return journalKeys{
		Up:    bind("↑/k", "up", "up", "k"),
		Down:  bind("↓/j", "down", "down", "j"),
		Enter: bind("enter/1-5", "choose", "enter"),
		Back:  bind("esc", "back to menu", "esc"),
		Quit:  bind("q", "exit", "q", "ctrl+c"),
		Help:  bind("?", "more keys", "?"),
	}
}
