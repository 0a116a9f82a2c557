// Package info provides the info tab: configuration, catalog and cache status.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/app"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/components"
)

// Model is the info tab. It only reads; every value is pulled at render time.
type Model struct {
	state    *app.State
	services *services.Manager
	pane     components.ScrollPane
	scroll   components.ScrollKeys
}

// New creates the info tab. mgr may be nil, in which case only the
// application state is shown.
func New(state *app.State, mgr *services.Manager) *Model {
	scroll := components.DefaultScrollKeys()
	return &Model{
		state:    state,
		services: mgr,
		pane:     components.NewScrollPane(scroll),
		scroll:   scroll,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m, m.pane.Update(msg)
	}
	return m, nil
}

func (m *Model) SetSize(width, height int) { m.pane.SetSize(width, height) }

func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.scroll.Up, m.scroll.Down}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.scroll.All()}
}
