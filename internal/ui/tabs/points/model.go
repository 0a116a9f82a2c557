// Package points provides the tab charting every configured interconnection point.
package points

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/app"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/ui/components"
)

// Model is the points tab. It shows all points in one chart, or one card
// per point when split.
type Model struct {
	state   *app.State
	spinner spinner.Model
	pane    components.ScrollPane

	split  key.Binding
	scroll components.ScrollKeys

	isSplit bool
}

// New creates the points tab.
func New(state *app.State) *Model {
	scroll := components.DefaultScrollKeys()
	return &Model{
		state:   state,
		spinner: components.NewSpinner(),
		pane:    components.NewScrollPane(scroll),
		split:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "combined/split charts")),
		scroll:  scroll,
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

	case app.SnapshotLoadedMsg, app.ViewChangedMsg:
		m.pane.GotoTop()

	case tea.KeyMsg:
		if key.Matches(msg, m.split) {
			m.isSplit = !m.isSplit
			m.pane.GotoTop()
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
	return []key.Binding{m.split, m.scroll.Up, m.scroll.Down}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.split}, m.scroll.All()}
}
