package counter

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Increment key.Binding
	Decrement key.Binding
	Reset     key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Increment: key.NewBinding(
		key.WithKeys("j", "right"),
		key.WithHelp("j/→", "increment"),
	),
	Decrement: key.NewBinding(
		key.WithKeys("k", "left"),
		key.WithHelp("k/←", "decrement"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Decrement, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
