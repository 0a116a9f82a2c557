package app

import (
	"errors"
	"testing"
	"time"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/export"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.GetSnapshot() != nil {
		t.Error("Snapshot should be nil")
	}
	if !s.Loading.Initial {
		t.Error("Initial loading should be true")
	}
	if s.GetView() != models.DefaultViewConfig() {
		t.Errorf("View = %s, want default", s.GetView())
	}
	if s.GetExportFormat() != export.FormatXLSX {
		t.Errorf("ExportFormat = %s, want XLSX", s.GetExportFormat())
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading(ResourceSnapshot, true)
	if !s.Loading.Snapshot || !s.IsFetching() {
		t.Error("snapshot load should count as fetching")
	}

	s.SetLoading(ResourceSnapshot, false)
	if !s.AnyLoading() {
		t.Error("initial load is still pending")
	}

	s.SetLoading(ResourceInitial, false)
	if s.AnyLoading() {
		t.Errorf("nothing should be loading, got %v", s.LoadingResources())
	}

	s.SetLoading(ResourceExport, true)
	if got := s.LoadingResources(); len(got) != 1 || got[0] != ResourceExport {
		t.Errorf("LoadingResources = %v, want [export]", got)
	}
	if s.IsFetching() {
		t.Error("export alone is not a fetch")
	}

	s.SetLoading(Resource("bogus"), true)
	if len(s.LoadingResources()) != 1 {
		t.Error("unknown resources should be ignored")
	}
}

func TestState_SnapshotAndError(t *testing.T) {
	s := NewState()
	fetched := time.Date(2023, 1, 4, 9, 30, 0, 0, time.UTC)
	snap := &models.Snapshot{FetchedAt: fetched}

	s.SetLastError(errors.New("data retrieval failed"))
	s.SetSnapshot(snap)

	if s.GetSnapshot() != snap {
		t.Error("GetSnapshot should return the stored snapshot")
	}
	if s.GetLastError() != nil {
		t.Error("a new snapshot should clear the last error")
	}
	if !s.GetLastUpdated().Equal(fetched) {
		t.Errorf("LastUpdated = %v, want %v", s.GetLastUpdated(), fetched)
	}

	s.SetLastError(errors.New("data retrieval failed"))
	if s.GetSnapshot() != nil {
		t.Error("an error should drop the snapshot")
	}
}

func TestState_View(t *testing.T) {
	s := NewState()
	v := s.GetView().ToggleUnit()

	s.SetView(v)
	if s.GetView() != v {
		t.Errorf("GetView = %s, want %s", s.GetView(), v)
	}
}

func TestState_ExportFormat(t *testing.T) {
	s := NewState()

	want := []export.Format{export.FormatPDF, export.FormatHTML, export.FormatPNG, export.FormatXLSX}
	for _, w := range want {
		if got := s.CycleExportFormat(); got != w {
			t.Errorf("CycleExportFormat = %s, want %s", got, w)
		}
	}

	s.SetLastExport("/tmp/out.xlsx")
	if s.GetLastExport() != "/tmp/out.xlsx" {
		t.Error("LastExport not stored")
	}
}

func TestState_Stats(t *testing.T) {
	s := NewState()
	if s.GetStats() != nil {
		t.Error("Stats should start nil")
	}

	s.SetStats(services.Stats{Points: 4, Composites: 2})
	got := s.GetStats()
	if got == nil {
		t.Fatal("GetStats returned nil")
	}
	if got.Points != 4 || got.Composites != 2 {
		t.Errorf("Stats = %+v", got)
	}
}
