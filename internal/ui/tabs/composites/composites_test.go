package composites

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/app"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
)

func date(s string) models.CalendarDate {
	d, _ := models.ParseCalendarDate(s)
	return d
}

func pts(pairs ...any) []models.Point {
	out := make([]models.Point, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Point{Date: date(pairs[i].(string)), Value: pairs[i+1].(float64)})
	}
	return out
}

func sampleSnapshot(view models.ViewConfig) *models.Snapshot {
	return &models.Snapshot{
		FetchedAt: time.Date(2023, 1, 4, 9, 30, 0, 0, time.UTC),
		Points: []models.NamedSeries{
			{Name: "Kiemenai", Points: pts("2023-01-01", 30.0, "2023-01-02", 30.0)},
			{Name: "Kotlovka", Points: pts("2023-01-01", 10.0, "2023-01-02", 10.0)},
			{Name: "Klaipeda", Points: pts("2023-01-01", 5.0)},
		},
		Composites: []models.CompositeResult{
			{
				Series: models.CompositeSeries{
					Name:    "Lithuania inflow",
					Members: []string{"Kiemenai", "Kotlovka"},
					Points:  pts("2023-01-01", 40.0, "2023-01-02", 40.0),
				},
				AlignedDays: 3,
			},
			{
				Series: models.CompositeSeries{
					Name:    "Baltic supply",
					Members: []string{"Kiemenai", "Klaipeda"},
				},
				Err: &series.AxisMismatchError{Series: "Klaipeda", Date: date("2023-01-02")},
			},
		},
		View:   view,
		Factor: 1,
	}
}

func sized(state *app.State) *Model {
	m := New(state)
	m.SetSize(120, 80)
	return m
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if !m.showShares {
		t.Error("member shares should be shown by default")
	}
	if m.Init() == nil {
		t.Error("Init should start the spinner")
	}
}

func TestView_Loading(t *testing.T) {
	m := sized(app.NewState())
	if !strings.Contains(m.View(), "Aligning composites") {
		t.Error("expected spinner before the first snapshot")
	}
}

func TestView_Error(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetLastError(errors.New(`configuration error: unknown series name: "x"`))
	m := sized(state)

	if !strings.Contains(m.View(), "unknown series name") {
		t.Error("expected configuration error text")
	}
}

func TestView_NoComposites(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSnapshot(&models.Snapshot{View: models.DefaultViewConfig()})
	m := sized(state)

	if !strings.Contains(m.View(), "No composites configured") {
		t.Error("expected empty state")
	}
}

func TestView_MixedResults(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSnapshot(sampleSnapshot(models.DefaultViewConfig()))
	m := sized(state)

	view := m.View()
	for _, want := range []string{
		"Lithuania inflow",
		"Kiemenai + Kotlovka",
		"Aligned days",
		"Shares on 02.01.2023",
		"75%",
		"25%",
		"Baltic supply",
		"Axis mismatch",
		"Klaipeda has no value on 02.01.2023.",
		"1 failed",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_DroppedDays(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSnapshot(sampleSnapshot(models.DefaultViewConfig()))
	m := sized(state)

	// Three aligned days, two kept.
	view := m.View()
	if !strings.Contains(view, "Dropped (NaN)") {
		t.Fatal("expected dropped row")
	}
}

func TestView_TrustFirstFlags(t *testing.T) {
	view := models.DefaultViewConfig().ToggleAlign().ToggleValidation()
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSnapshot(sampleSnapshot(view))
	m := sized(state)

	out := m.View()
	if !strings.Contains(out, "axis taken from first member") {
		t.Error("expected trust-first flag")
	}
	if !strings.Contains(out, "axis validation off") {
		t.Error("expected validation-off flag")
	}
}

func TestView_OtherErrors(t *testing.T) {
	snap := sampleSnapshot(models.DefaultViewConfig())
	snap.Composites = []models.CompositeResult{
		{Series: models.CompositeSeries{Name: "Solo"}, Err: series.ErrTooFewSeries},
		{Err: errors.New("boom")},
	}
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSnapshot(snap)
	m := sized(state)

	out := m.View()
	if !strings.Contains(out, "at least two members") {
		t.Error("expected too-few-members message")
	}
	if !strings.Contains(out, "boom") {
		t.Error("expected raw error text")
	}
	if !strings.Contains(out, "Composite") {
		t.Error("unnamed composite should get a fallback title")
	}
}

func TestUpdate_ToggleShares(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSnapshot(sampleSnapshot(models.DefaultViewConfig()))
	m := sized(state)

	tab, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	m = tab.(*Model)
	if m.showShares {
		t.Fatal("b should hide member shares")
	}
	if strings.Contains(m.View(), "Shares on") {
		t.Error("shares should not render when hidden")
	}
}

func TestMemberShares(t *testing.T) {
	snap := sampleSnapshot(models.DefaultViewConfig())

	shares := memberShares(snap, []string{"Kiemenai", "Klaipeda", "Unknown"}, date("2023-01-02"))
	if len(shares) != 3 {
		t.Fatalf("got %d shares, want 3", len(shares))
	}
	if shares[0].Value != 30 {
		t.Errorf("Kiemenai = %v, want 30", shares[0].Value)
	}
	if !math.IsNaN(shares[1].Value) {
		t.Error("member without a value on the date should be NaN")
	}
	if !math.IsNaN(shares[2].Value) || shares[2].Color != "" {
		t.Error("unknown member should have no value and no color")
	}
}
