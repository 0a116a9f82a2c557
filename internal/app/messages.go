package app

import (
	"time"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/export"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services"
)

// Data messages.
type (
	// SnapshotLoadedMsg carries the result of one dashboard computation.
	// Results whose Seq is not the latest request are dropped.
	SnapshotLoadedMsg struct {
		Seq      uint64
		View     models.ViewConfig
		Snapshot *models.Snapshot
		Err      error
	}

	StatsLoadedMsg struct {
		Stats services.Stats
	}

	// ViewChangedMsg follows every toggle so tabs can reset their scroll.
	ViewChangedMsg struct {
		View models.ViewConfig
	}

	// RefreshMsg asks for a new snapshot. Force skips the fetch cache.
	RefreshMsg struct {
		Force bool
	}

	ExportMsg struct {
		Format export.Format
	}

	ExportResultMsg struct {
		Path   string
		Format export.Format
		Error  error
	}
)

// Service subscription.
type (
	SubscriptionEventMsg struct {
		Channel chan services.ServiceEvent
	}

	ServiceEventMsg struct {
		Event services.ServiceEvent
	}
)

// UI housekeeping.
type (
	TickMsg struct {
		Time time.Time
	}

	StartLoadingMsg struct {
		Resource Resource
	}

	StopLoadingMsg struct {
		Resource Resource
	}

	AddNotificationMsg struct {
		Type     NotificationType
		Message  string
		Duration time.Duration
	}

	RemoveNotificationMsg struct {
		ID string
	}

	ClearExpiredNotificationsMsg struct{}

	// ErrorMsg raises an error toast, prefixed with Context when set.
	ErrorMsg struct {
		Error   error
		Context string
	}

	TabSwitchMsg struct {
		Tab TabID
	}

	ToggleHelpMsg struct{}
)
