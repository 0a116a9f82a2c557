// Package composites provides the tab for aggregated multi-point series.
package composites

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/app"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/components"
)

// Model is the composites tab.
type Model struct {
	state   *app.State
	spinner spinner.Model
	pane    components.ScrollPane

	shares key.Binding
	scroll components.ScrollKeys

	// showShares adds the member share bars for the latest aligned day.
	showShares bool
}

// New creates the composites tab. Member shares are shown by default.
func New(state *app.State) *Model {
	scroll := components.DefaultScrollKeys()
	return &Model{
		state:      state,
		spinner:    components.NewSpinner(),
		pane:       components.NewScrollPane(scroll),
		shares:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "member shares")),
		scroll:     scroll,
		showShares: true,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.shares) {
			m.showShares = !m.showShares
			return m, nil
		}
		return m, m.pane.Update(msg)
	}

	return m, nil
}

func (m *Model) SetSize(width, height int) {
	m.pane.SetSize(width, height)
}

func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.shares, m.scroll.Up, m.scroll.Down}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.shares}, m.scroll.All()}
}
