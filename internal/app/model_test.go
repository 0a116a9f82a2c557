package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/catalog"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func readyModel() *Model {
	model := NewModel(nil)
	model.ready = true
	model.width = 100
	model.height = 40
	return model
}

func testSnapshot() *models.Snapshot {
	d := func(s string) models.CalendarDate {
		date, _ := models.ParseCalendarDate(s)
		return date
	}
	return &models.Snapshot{
		FetchedAt: time.Date(2023, 1, 4, 9, 30, 0, 0, time.UTC),
		BatchID:   "0f8fad5b-d9cb-469f-a165-70867728950e",
		Points: []models.NamedSeries{{
			Name:   "Kiemenai exit",
			Points: []models.Point{{Date: d("2023-01-01"), Value: 1}, {Date: d("2023-01-02"), Value: 2}},
		}},
		Composites: []models.CompositeResult{
			{Series: models.CompositeSeries{Name: "Lithuania inflow"}, Err: &series.AxisMismatchError{Series: "x", Date: d("2023-01-02")}},
		},
		View:   models.DefaultViewConfig(),
		Factor: 1,
	}
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabPoints {
		t.Error("Default tab should be Points")
	}
	if len(model.tabs) != 3 {
		t.Errorf("Should have 3 tabs placeholder, got %d", len(model.tabs))
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	if model.Init() == nil {
		t.Error("Init returned nil command")
	}
	if len(model.state.GetNotifications()) != 1 {
		t.Error("Init should show the loading notification")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}

	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", m.width, m.height)
	}
	if !m.ready {
		t.Error("Model should be ready after WindowSizeMsg")
	}
}

func TestModel_TabKeys(t *testing.T) {
	model := readyModel()

	model.Update(TabSwitchMsg{Tab: TabComposites})
	if model.activeTab != TabComposites {
		t.Errorf("ActiveTab = %v, want Composites", model.activeTab)
	}

	model.handleKeyMsg(runeKey('3'))
	if model.activeTab != TabInfo {
		t.Errorf("ActiveTab = %v, want Info", model.activeTab)
	}

	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabPoints {
		t.Errorf("tab should wrap to Points, got %v", model.activeTab)
	}

	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.activeTab != TabInfo {
		t.Errorf("shift+tab should wrap to Info, got %v", model.activeTab)
	}

	// h toggles the rate instead of moving tabs
	model.handleKeyMsg(runeKey('h'))
	if model.activeTab != TabInfo {
		t.Errorf("h must not switch tabs, got %v", model.activeTab)
	}
}

func TestModel_ToggleKeys(t *testing.T) {
	tests := []struct {
		key   rune
		check func(models.ViewConfig) bool
	}{
		{'a', func(v models.ViewConfig) bool { return v.Indicator == models.IndicatorAllocation }},
		{'u', func(v models.ViewConfig) bool { return v.Unit == models.UnitVolume }},
		{'h', func(v models.ViewConfig) bool { return v.Rate == models.RateHourlyAverage }},
		{'m', func(v models.ViewConfig) bool { return v.Align == models.AlignTrustFirst }},
		{'v', func(v models.ViewConfig) bool { return !v.ValidateAxes }},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			model := readyModel()
			before := model.loadSeq

			if cmd := model.handleKeyMsg(runeKey(tt.key)); cmd == nil {
				t.Error("toggle should return a command")
			}
			if !tt.check(model.state.GetView()) {
				t.Errorf("view not toggled: %s", model.state.GetView())
			}
			if model.loadSeq != before+1 {
				t.Errorf("loadSeq = %d, want %d", model.loadSeq, before+1)
			}

			model.handleKeyMsg(runeKey(tt.key))
			if model.state.GetView() != models.DefaultViewConfig() {
				t.Errorf("second toggle should restore default, got %s", model.state.GetView())
			}
		})
	}
}

func TestModel_ToggleCancelsInFlight(t *testing.T) {
	model := readyModel()

	ctx, cancel := context.WithCancel(context.Background())
	model.cancelLoad = cancel

	model.handleKeyMsg(runeKey('u'))

	if ctx.Err() == nil {
		t.Error("previous request should be cancelled")
	}
}

func TestModel_StaleSnapshotIgnored(t *testing.T) {
	model := readyModel()
	model.loadSeq = 2

	model.Update(SnapshotLoadedMsg{Seq: 1, Snapshot: testSnapshot()})
	if model.state.GetSnapshot() != nil {
		t.Error("stale snapshot should be ignored")
	}
	if !model.state.IsInitialLoading() {
		t.Error("stale result must not clear loading")
	}

	snap := testSnapshot()
	_, cmd := model.Update(SnapshotLoadedMsg{Seq: 2, Snapshot: snap})
	if model.state.GetSnapshot() != snap {
		t.Error("current snapshot should be applied")
	}
	if model.state.AnyLoading() {
		t.Error("loading should be cleared")
	}
	if cmd == nil {
		t.Error("failed composite should raise a warning")
	}
}

func TestModel_SnapshotError(t *testing.T) {
	model := readyModel()
	model.state.SetSnapshot(testSnapshot())
	model.loadSeq = 1

	cmd := model.handleSnapshotLoaded(SnapshotLoadedMsg{Seq: 1, Err: errors.New("data retrieval failed")})
	if cmd == nil {
		t.Fatal("expected one notification command, got none")
	}
	msg, ok := cmd().(AddNotificationMsg)
	if !ok || msg.Type != NotificationError {
		t.Errorf("expected error notification, got %#v", msg)
	}
	if model.state.GetSnapshot() != nil {
		t.Error("failed load should not keep a partial chart")
	}
	if model.state.GetLastError() == nil {
		t.Error("LastError should be set")
	}
}

func TestModel_SnapshotCanceled(t *testing.T) {
	model := readyModel()
	model.loadSeq = 1

	cmd := model.handleSnapshotLoaded(SnapshotLoadedMsg{Seq: 1, Err: context.Canceled})
	if cmd != nil {
		t.Error("cancelled load should not notify")
	}
	if model.state.GetLastError() != nil {
		t.Error("cancelled load is not an error")
	}
}

func TestModel_Export(t *testing.T) {
	model := readyModel()

	cmd := model.handleKeyMsg(runeKey('e'))
	if cmd == nil {
		t.Fatal("export without data should warn")
	}
	if msg, ok := cmd().(AddNotificationMsg); !ok || msg.Type != NotificationWarning {
		t.Errorf("expected warning, got %#v", msg)
	}

	model.handleKeyMsg(runeKey('E'))
	if got := model.state.GetExportFormat().String(); got != "PDF" {
		t.Errorf("format = %s, want PDF", got)
	}

	model.state.SetLoading("export", true)
	model.Update(ExportResultMsg{Path: "/tmp/x.pdf"})
	if model.state.GetLastExport() != "/tmp/x.pdf" {
		t.Error("LastExport should be recorded")
	}
	if model.state.Loading.Export {
		t.Error("export loading should be cleared")
	}

	res := model.handleExportResult(ExportResultMsg{Error: errors.New("disk full")})
	if msg, ok := res().(AddNotificationMsg); !ok || msg.Type != NotificationError {
		t.Errorf("expected error notification, got %#v", msg)
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)

	_, cmd := model.Update(TickMsg{Time: time.Now()})
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	if !strings.Contains(model.View(), "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	model.ready = true
	model.width = 100
	model.height = 24

	view := model.View()
	if !strings.Contains(view, "Points") {
		t.Error("View should show Points tab")
	}
	if !strings.Contains(view, "No view registered") {
		t.Error("View should show placeholder text")
	}
	if !strings.Contains(view, "align Strict") {
		t.Error("status bar should show the align mode")
	}
}

func TestModel_StatusBarFlagsTrustFirst(t *testing.T) {
	model := readyModel()
	model.state.SetView(models.DefaultViewConfig().ToggleAlign().ToggleValidation())

	bar := model.renderStatusBar()
	if !strings.Contains(bar, "⚠ align Trust first") {
		t.Errorf("trust-first should be flagged: %q", bar)
	}
	if !strings.Contains(bar, "validation off") {
		t.Errorf("validation state missing: %q", bar)
	}
}

func TestModel_Help(t *testing.T) {
	model := readyModel()
	model.height = 20

	model.Update(ToggleHelpMsg{})
	if !model.showHelp {
		t.Error("showHelp should be true")
	}

	if !strings.Contains(model.View(), "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}

	// toggles are inert while help is open
	model.handleKeyMsg(runeKey('u'))
	if model.state.GetView().Unit != models.UnitEnergy {
		t.Error("keys should be ignored while help is shown")
	}

	model.handleKeyMsg(runeKey('?'))
	if model.showHelp {
		t.Error("showHelp should be false after toggle")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := readyModel()

	model.Update(AddNotificationMsg{
		Message: "Test Note",
		Type:    NotificationInfo,
	})

	if len(model.state.GetNotifications()) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(model.state.GetNotifications()))
	}
	if !strings.Contains(model.View(), "Test Note") {
		t.Error("View should show notification")
	}

	model.Update(RemoveNotificationMsg{ID: "nonexistent"})
	model.Update(ClearExpiredNotificationsMsg{})
	model.Update(ErrorMsg{Error: errors.New("boom"), Context: "catalog"})
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	if cmd := model.handleServiceEvent(services.ErrorEvent{Service: "catalog", Error: errors.New("bad yaml")}); cmd == nil {
		t.Error("Error event should trigger notification command")
	}

	before := model.loadSeq
	model.handleServiceEvent(services.CatalogChangedEvent{Catalog: catalog.Default()})
	if model.loadSeq != before+1 {
		t.Error("catalog change should start a new load")
	}

	model.handleServiceEvent(services.RefreshDueEvent{At: time.Now()})
	if model.loadSeq != before+2 {
		t.Error("scheduled refresh should start a new load")
	}
}

func TestModel_LoadingMessages(t *testing.T) {
	model := NewModel(nil)

	model.Update(StartLoadingMsg{Resource: "snapshot"})
	if !model.state.Loading.Snapshot {
		t.Error("Loading.Snapshot should be true")
	}

	model.Update(StopLoadingMsg{Resource: "snapshot"})
	if model.state.Loading.Snapshot {
		t.Error("Loading.Snapshot should be false")
	}

	model.Update(StatsLoadedMsg{Stats: services.Stats{Points: 4}})
	if model.state.GetStats().Points != 4 {
		t.Error("Stats should be updated")
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestTabID_String(t *testing.T) {
	tests := []struct {
		tab  TabID
		want string
	}{
		{TabPoints, "Points"},
		{TabComposites, "Composites"},
		{TabInfo, "Info"},
		{TabID(999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.tab.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %q, want %q", tt.tab, got, tt.want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
