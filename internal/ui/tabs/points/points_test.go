package points

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/app"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

func date(s string) models.CalendarDate {
	d, _ := models.ParseCalendarDate(s)
	return d
}

func sampleSnapshot() *models.Snapshot {
	return &models.Snapshot{
		FetchedAt: time.Date(2023, 1, 4, 9, 30, 0, 0, time.UTC),
		From:      date("2023-01-01"),
		To:        date("2023-01-03"),
		Points: []models.NamedSeries{
			{Name: "Kiemenai", Points: []models.Point{
				{Date: date("2023-01-01"), Value: 10},
				{Date: date("2023-01-02"), Value: 12},
				{Date: date("2023-01-03"), Value: 11},
			}},
			{Name: "Kotlovka", Points: []models.Point{
				{Date: date("2023-01-01"), Value: 4},
				{Date: date("2023-01-02"), Value: 5},
			}},
		},
		View:   models.DefaultViewConfig(),
		Factor: 1,
	}
}

func sized(state *app.State) *Model {
	m := New(state)
	m.SetSize(120, 60)
	return m
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.isSplit {
		t.Error("charts should start combined")
	}
	if m.Init() == nil {
		t.Error("Init should start the spinner")
	}
}

func TestView_Loading(t *testing.T) {
	state := app.NewState()
	state.SetLoading("snapshot", true)
	m := sized(state)

	if !strings.Contains(m.View(), "Fetching gas flows") {
		t.Error("expected spinner label while the first snapshot loads")
	}
}

func TestView_Error(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetLastError(errors.New("feed unavailable"))
	m := sized(state)

	view := m.View()
	if !strings.Contains(view, "feed unavailable") {
		t.Error("expected error message")
	}
	if !strings.Contains(view, "Press r") {
		t.Error("expected retry hint")
	}
}

func TestView_Empty(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSnapshot(&models.Snapshot{View: models.DefaultViewConfig()})
	m := sized(state)

	if !strings.Contains(m.View(), "No observations") {
		t.Error("expected empty state")
	}
}

func TestView_Combined(t *testing.T) {
	state := app.NewState()
	state.SetSnapshot(sampleSnapshot())
	m := sized(state)

	view := m.View()
	for _, want := range []string{"Interconnection points", "Kiemenai", "Kotlovka", "GWh/d", "03.01.2023"} {
		if !strings.Contains(view, want) {
			t.Errorf("combined view missing %q", want)
		}
	}
}

func TestView_UpdatingFlag(t *testing.T) {
	state := app.NewState()
	state.SetSnapshot(sampleSnapshot())
	state.SetLoading("snapshot", true)
	m := sized(state)

	if !strings.Contains(m.View(), "updating") {
		t.Error("expected updating flag while a refresh runs over an existing snapshot")
	}
}

func TestUpdate_ToggleSplit(t *testing.T) {
	state := app.NewState()
	state.SetSnapshot(sampleSnapshot())
	m := sized(state)

	tab, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = tab.(*Model)
	if !m.isSplit {
		t.Fatal("s should switch to split charts")
	}

	view := m.View()
	if !strings.Contains(view, "Latest 03.01.2023") {
		t.Error("split view should show each point's latest value")
	}
	if !strings.Contains(view, "Latest 02.01.2023") {
		t.Error("split view should render the shorter series on its own card")
	}

	tab, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if tab.(*Model).isSplit {
		t.Error("s should switch back to combined charts")
	}
}

func TestSetSize(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(100, 30)
	if w, h := m.pane.ViewportSize(); w != 94 || h != 28 {
		t.Errorf("viewport = %dx%d, want 94x28", w, h)
	}

	m.SetSize(2, 1)
	if w, h := m.pane.ViewportSize(); w != 0 || h != 0 {
		t.Error("viewport size should not go negative")
	}
}

func TestHelp(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) != 3 {
		t.Errorf("ShortHelp() = %d bindings, want 3", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) != 2 {
		t.Errorf("FullHelp() = %d groups, want 2", len(m.FullHelp()))
	}
}
