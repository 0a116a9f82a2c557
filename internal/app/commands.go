package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/export"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services"
)

// Housekeeping and toast lifetimes.
const (
	DefaultTickInterval         = 2 * time.Second
	DefaultNotificationDuration = 5 * time.Second
	QuickNotificationDuration   = 3 * time.Second
	LongNotificationDuration    = 10 * time.Second
)

// tickCmd drives notification expiry and stats polling.
func tickCmd() tea.Cmd {
	return tea.Tick(DefaultTickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// loadSnapshotCmd computes a snapshot for view. The result is tagged with seq so
// the model can discard it once a newer request was issued.
func loadSnapshotCmd(ctx context.Context, mgr *services.Manager, seq uint64, view models.ViewConfig, force bool) tea.Cmd {
	return func() tea.Msg {
		snap, err := mgr.Load(ctx, view, force)
		return SnapshotLoadedMsg{Seq: seq, View: view, Snapshot: snap, Err: err}
	}
}

func loadStatsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return StatsLoadedMsg{Stats: mgr.GetStats()}
	}
}

// exportCmd writes snap to the export directory.
func exportCmd(mgr *services.Manager, snap *models.Snapshot, f export.Format) tea.Cmd {
	return func() tea.Msg {
		path, err := mgr.Export(snap, f)
		return ExportResultMsg{Path: path, Format: f, Error: err}
	}
}

func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd blocks on ch. A closed channel ends the subscription.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notify returns a command that raises a toast. The lifetime depends on the
// severity: errors linger, info toasts are brief.
func notify(t NotificationType, message string) tea.Cmd {
	d := DefaultNotificationDuration
	switch t {
	case NotificationError:
		d = LongNotificationDuration
	case NotificationInfo:
		d = QuickNotificationDuration
	}
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}
