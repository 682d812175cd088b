package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding the roster view responds to
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Add         key.Binding
	Edit        key.Binding
	Recolor     key.Binding
	Remove      key.Binding
	ActivateAll key.Binding
	BenchAll    key.Binding
	Shuffle     key.Binding
	Teams2      key.Binding
	Teams3      key.Binding
	Teams4      key.Binding
	Undo        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "bench/activate"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Recolor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new color"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		ActivateAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "clear bench"),
		),
		BenchAll: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "bench all"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Teams2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "2 teams"),
		),
		Teams3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "3 teams"),
		),
		Teams4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "4 teams"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Remove, k.Shuffle, k.Undo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Add, k.Edit, k.Recolor, k.Remove},
		{k.ActivateAll, k.BenchAll, k.Shuffle},
		{k.Teams2, k.Teams3, k.Teams4},
		{k.Undo, k.Help, k.Quit},
	}
}
