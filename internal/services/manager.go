// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/robfig/cron/v3"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/catalog"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/config"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/export"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/logger"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services/dashboard"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services/transparency"
)

type (
	// CatalogChangedEvent is emitted when the catalog file was reloaded.
	CatalogChangedEvent struct {
		Catalog *catalog.Catalog
	}

	// RefreshDueEvent is emitted by the refresh schedule.
	RefreshDueEvent struct {
		At time.Time
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (CatalogChangedEvent) isServiceEvent() {}
func (RefreshDueEvent) isServiceEvent()     {}
func (ErrorEvent) isServiceEvent()          {}

// Stats summarises service state for the Info tab.
type Stats struct {
	Cache       transparency.CacheStats
	LastFetch   time.Time
	NextRefresh time.Time
	Points      int
	Composites  int
}

// notifier sends desktop notifications.
type notifier func(title, body string) error

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	catalog     *catalog.Watcher
	client      *transparency.Client
	cache       *transparency.Cache
	dashboard   *dashboard.Service
	exporter    *export.Exporter
	scheduler   *cron.Cron
	refreshID   cron.EntryID
	notify      notifier
	stopChan    chan struct{}
	closeOnce   sync.Once
	subscribers []chan<- ServiceEvent
	mismatched  map[string]bool
	lastFailed  bool
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:        cfg,
		stopChan:   make(chan struct{}),
		mismatched: make(map[string]bool),
		notify:     func(title, body string) error { return beeep.Notify(title, body, "") },
	}

	var err error
	m.catalog, err = catalog.NewWatcher(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	m.client = transparency.New(cfg.BaseURL, cfg.HTTPTimeout)
	m.cache = transparency.NewCache(m.client, cfg.CacheTTL)
	m.dashboard = dashboard.New(m.cache, dashboard.Config{
		From:     cfg.FromDate,
		Timezone: cfg.Timezone,
	})
	m.exporter = export.New(cfg.ExportDir)

	if cfg.RefreshSchedule != "" {
		m.scheduler = cron.New()
		m.refreshID, err = m.scheduler.AddFunc(cfg.RefreshSchedule, func() {
			m.broadcast(RefreshDueEvent{At: time.Now()})
		})
		if err != nil {
			_ = m.catalog.Close()
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", cfg.RefreshSchedule, err)
		}
		m.scheduler.Start()
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.catalog.Events():
			m.handleCatalogEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleCatalogEvent(event catalog.Event) {
	switch event.Type {
	case catalog.EventCatalogChanged:
		m.broadcast(CatalogChangedEvent{Catalog: event.Catalog})

	case catalog.EventError:
		m.broadcast(ErrorEvent{
			Service: "catalog",
			Error:   event.Error,
		})
	}
}

// Load computes a snapshot of the current catalog for view.
// With force set cached series are refetched.
func (m *Manager) Load(ctx context.Context, view models.ViewConfig, force bool) (*models.Snapshot, error) {
	snap, err := m.dashboard.Load(ctx, m.catalog.Current(), view, force)
	if errors.Is(err, context.Canceled) {
		return nil, err
	}
	m.checkNotifications(snap, err)
	return snap, err
}

// checkNotifications alerts on transitions only: the first failed load after a
// success, and a composite that newly fails alignment.
func (m *Manager) checkNotifications(snap *models.Snapshot, loadErr error) {
	if !m.cfg.Notify {
		return
	}

	m.mu.Lock()
	var alerts [][2]string
	if loadErr != nil {
		if !m.lastFailed {
			alerts = append(alerts, [2]string{"Gas flow: data retrieval failed", loadErr.Error()})
		}
		m.lastFailed = true
	} else {
		m.lastFailed = false
		for _, c := range snap.Composites {
			failed := !c.OK()
			if failed && !m.mismatched[c.Series.Name] {
				alerts = append(alerts, [2]string{"Gas flow: " + c.Series.Name, c.Err.Error()})
			}
			m.mismatched[c.Series.Name] = failed
		}
	}
	notify := m.notify
	m.mu.Unlock()

	for _, a := range alerts {
		if err := notify(a[0], a[1]); err != nil {
			logger.Warn("desktop notification failed", "error", err)
		}
	}
}

// Export writes snap in format f and returns the written path.
func (m *Manager) Export(snap *models.Snapshot, f export.Format) (string, error) {
	path, err := m.exporter.Export(snap, f)
	if err != nil {
		return "", err
	}
	logger.Info("snapshot exported", "path", path, "format", f.String(), "batch", snap.BatchID)
	return path, nil
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe registers a buffered channel that receives every service event
// until Unsubscribe or Close.
func (m *Manager) Subscribe() chan ServiceEvent {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Catalog returns the current catalog.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog.Current()
}

// CatalogPath returns the catalog file, empty for the embedded default.
func (m *Manager) CatalogPath() string {
	return m.catalog.Path()
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// LastSnapshot returns the most recent successful snapshot.
func (m *Manager) LastSnapshot() *models.Snapshot {
	return m.dashboard.Last()
}

// GetStats returns service statistics.
func (m *Manager) GetStats() Stats {
	cat := m.catalog.Current()
	stats := Stats{
		Cache:      m.cache.Stats(),
		Points:     len(cat.Points),
		Composites: len(cat.Composites),
	}
	if last := m.dashboard.Last(); last != nil {
		stats.LastFetch = last.FetchedAt
	}
	if m.scheduler != nil {
		stats.NextRefresh = m.scheduler.Entry(m.refreshID).Next
	}
	return stats
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.stopChan)

		if m.scheduler != nil {
			<-m.scheduler.Stop().Done()
		}

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		err = m.catalog.Close()
	})
	return err
}
