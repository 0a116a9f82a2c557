// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/export"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services"
)

// Resource names a background operation tracked by LoadingState.
type Resource string

// Tracked resources.
const (
	ResourceInitial  Resource = "initial"
	ResourceSnapshot Resource = "snapshot"
	ResourceExport   Resource = "export"
)

// LoadingState tracks which operations are in flight.
type LoadingState struct {
	Initial  bool
	Snapshot bool
	Export   bool
}

func (l *LoadingState) flag(r Resource) *bool {
	switch r {
	case ResourceInitial:
		return &l.Initial
	case ResourceSnapshot:
		return &l.Snapshot
	case ResourceExport:
		return &l.Export
	}
	return nil
}

// State is shared between the root model and the tabs. All access goes
// through the methods; the exported fields are read directly only in tests.
type State struct {
	mu sync.RWMutex

	Snapshot  *models.Snapshot
	View      models.ViewConfig
	Stats     *services.Stats
	LastError error

	ExportFormat export.Format
	LastExport   string

	Loading     LoadingState
	LastUpdated time.Time

	toasts toastQueue
}

// NewState returns the state before the first load: default view, XLSX
// exports and the initial fetch pending.
func NewState() *State {
	return &State{
		View:         models.DefaultViewConfig(),
		ExportFormat: export.FormatXLSX,
		Loading:      LoadingState{Initial: true},
	}
}

func (s *State) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func (s *State) write(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// SetLoading marks r as in flight or done. Unknown resources are ignored.
func (s *State) SetLoading(r Resource, loading bool) {
	s.write(func() {
		if f := s.Loading.flag(r); f != nil {
			*f = loading
		}
	})
}

// LoadingResources lists the resources currently in flight.
func (s *State) LoadingResources() []Resource {
	var out []Resource
	s.read(func() {
		for _, r := range []Resource{ResourceInitial, ResourceSnapshot, ResourceExport} {
			if *s.Loading.flag(r) {
				out = append(out, r)
			}
		}
	})
	return out
}

// AnyLoading reports whether any resource is in flight.
func (s *State) AnyLoading() bool {
	return len(s.LoadingResources()) > 0
}

// IsInitialLoading reports whether the first load has not completed yet.
func (s *State) IsInitialLoading() bool {
	var v bool
	s.read(func() { v = s.Loading.Initial })
	return v
}

// IsFetching reports whether a snapshot computation is in flight.
func (s *State) IsFetching() bool {
	var v bool
	s.read(func() { v = s.Loading.Initial || s.Loading.Snapshot })
	return v
}

// SetSnapshot replaces the current snapshot. A non-nil snapshot clears the
// previous error.
func (s *State) SetSnapshot(snap *models.Snapshot) {
	s.write(func() {
		s.Snapshot = snap
		if snap != nil {
			s.LastError = nil
			s.LastUpdated = snap.FetchedAt
		}
	})
}

// GetSnapshot returns the current snapshot, nil before the first successful load.
func (s *State) GetSnapshot() *models.Snapshot {
	var v *models.Snapshot
	s.read(func() { v = s.Snapshot })
	return v
}

// SetLastError records a failed load. The previous snapshot is dropped so
// no tab keeps charting stale data next to the error.
func (s *State) SetLastError(err error) {
	s.write(func() {
		s.LastError = err
		if err != nil {
			s.Snapshot = nil
		}
	})
}

// GetLastError returns the error of the most recent load, if it failed.
func (s *State) GetLastError() error {
	var v error
	s.read(func() { v = s.LastError })
	return v
}

// GetLastUpdated returns the fetch time of the current snapshot.
func (s *State) GetLastUpdated() time.Time {
	var v time.Time
	s.read(func() { v = s.LastUpdated })
	return v
}

func (s *State) SetView(v models.ViewConfig) { s.write(func() { s.View = v }) }

func (s *State) GetView() models.ViewConfig {
	var v models.ViewConfig
	s.read(func() { v = s.View })
	return v
}

func (s *State) SetStats(stats services.Stats) { s.write(func() { s.Stats = &stats }) }

// GetStats returns the last polled statistics, nil until the first poll.
func (s *State) GetStats() *services.Stats {
	var v *services.Stats
	s.read(func() { v = s.Stats })
	return v
}

// GetExportFormat returns the format used by the next export.
func (s *State) GetExportFormat() export.Format {
	var v export.Format
	s.read(func() { v = s.ExportFormat })
	return v
}

// CycleExportFormat advances to the next export format and returns it.
func (s *State) CycleExportFormat() export.Format {
	var v export.Format
	s.write(func() {
		s.ExportFormat = s.ExportFormat.Next()
		v = s.ExportFormat
	})
	return v
}

func (s *State) SetLastExport(path string) { s.write(func() { s.LastExport = path }) }

// GetLastExport returns the path of the last written export.
func (s *State) GetLastExport() string {
	var v string
	s.read(func() { v = s.LastExport })
	return v
}

// AddNotification queues a toast and returns its ID. A zero duration keeps
// it until removed.
func (s *State) AddNotification(t NotificationType, message string, d time.Duration) string {
	var id string
	s.write(func() { id = s.toasts.push(t, message, d) })
	return id
}

func (s *State) RemoveNotification(id string) { s.write(func() { s.toasts.remove(id) }) }

func (s *State) ClearExpiredNotifications() { s.write(func() { s.toasts.prune() }) }

// GetNotifications returns the toasts that have not expired, oldest first.
func (s *State) GetNotifications() []Notification {
	var v []Notification
	s.read(func() { v = s.toasts.active() })
	return v
}

// SetLoadingNotification shows message in the single spinner toast.
func (s *State) SetLoadingNotification(message string) {
	s.write(func() { s.toasts.upsertLoading(message) })
}

func (s *State) ClearLoadingNotification() { s.RemoveNotification(LoadingNotificationID) }
