package viewer

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	TabWorkloads key.Binding
	TabProjects  key.Binding
	TabClusters  key.Binding
	NextTab      key.Binding

	Refresh key.Binding
	Select  key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	TabWorkloads: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "workloads"),
	),
	TabProjects: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "projects"),
	),
	TabClusters: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "clusters"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.NextTab, k.Refresh, k.Select, k.Quit}
}
