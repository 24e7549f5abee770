package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	NextDay key.Binding
	PrevDay key.Binding
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Add     key.Binding
	Toggle  key.Binding
	Play    key.Binding
	Replay  key.Binding
	Export  key.Binding
	Import  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextDay, k.Play, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextDay, k.PrevDay, k.Quit, k.Help},
		{k.Up, k.Down, k.Add, k.Toggle},
		{k.Play, k.Replay, k.Export, k.Import},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextDay: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab/l", "next day"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab/h", "prev day"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play day"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "show/hide JSON"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import JSON"),
		),
	}
}
