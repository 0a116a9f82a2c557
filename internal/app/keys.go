package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings. Tab-local keys live with each tab.
type KeyMap struct {
	Tab1, Tab2, Tab3 key.Binding
	NextTab, PrevTab key.Binding

	Indicator  key.Binding
	Unit       key.Binding
	Rate       key.Binding
	Align      key.Binding
	Validation key.Binding

	Export  key.Binding
	Format  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1: bind("1", "points", "1"),
		Tab2: bind("2", "composites", "2"),
		Tab3: bind("3", "info", "3"),
		// h toggles the rate, so there is no vim-style tab movement.
		NextTab: bind("tab/→", "next tab", "tab", "right"),
		PrevTab: bind("shift+tab/←", "previous tab", "shift+tab", "left"),

		Indicator:  bind("a", "physical flow / allocation", "a"),
		Unit:       bind("u", "energy / volume", "u"),
		Rate:       bind("h", "daily / hourly average", "h"),
		Align:      bind("m", "strict / trust-first alignment", "m"),
		Validation: bind("v", "axis validation on / off", "v"),

		Export:  bind("e", "export snapshot", "e"),
		Format:  bind("E", "cycle export format", "E"),
		Refresh: bind("r", "refetch data", "r", "ctrl+r"),
		Help:    bind("?", "toggle help", "?"),
		Quit:    bind("q", "quit", "q", "ctrl+c"),
		Escape:  bind("esc", "close help", "esc"),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	sections := k.sections()
	groups := make([][]key.Binding, len(sections))
	for i, s := range sections {
		groups[i] = s.bindings
	}
	return groups
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (k KeyMap) sections() []helpSection {
	return []helpSection{
		{"Navigation", []key.Binding{k.Tab1, k.Tab2, k.Tab3, k.NextTab, k.PrevTab}},
		{"View", []key.Binding{k.Indicator, k.Unit, k.Rate, k.Align, k.Validation}},
		{"Actions", []key.Binding{k.Refresh, k.Export, k.Format, k.Help, k.Quit}},
	}
}
