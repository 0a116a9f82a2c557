// Package dashboard turns a view configuration into a fully computed snapshot.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/catalog"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/logger"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/series"
	"github.com/j-veylop/gasflow-dashboard-tui/internal/services/transparency"
)

// ErrRetrievalFailed is returned when any series of a batch could not be fetched.
// No partial snapshot is produced.
var ErrRetrievalFailed = errors.New("data retrieval failed")

// Source fetches series, optionally bypassing any cache.
type Source interface {
	Fetch(ctx context.Context, q transparency.Query) (models.NamedSeries, error)
	Refresh(ctx context.Context, q transparency.Query) (models.NamedSeries, error)
}

// Config holds the fixed query parameters.
type Config struct {
	From     models.CalendarDate
	Timezone string
}

// Service computes snapshots. It keeps only the last snapshot for display
// purposes; every call recomputes from fetched series.
type Service struct {
	source Source
	cfg    Config
	now    func() time.Time

	mu   sync.RWMutex
	last *models.Snapshot
}

// New creates a dashboard service.
func New(source Source, cfg Config) *Service {
	return &Service{
		source: source,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Load fetches every catalog point for view and computes the composites.
// With force set the freshness cache is bypassed.
func (s *Service) Load(ctx context.Context, cat *catalog.Catalog, view models.ViewConfig, force bool) (*models.Snapshot, error) {
	now := s.now()
	batch := uuid.NewString()
	to := models.DateFromTime(now)

	log := logger.Logger.With("batch", batch, "view", view.String())
	log.Info("loading snapshot", "points", len(cat.Points), "force", force)

	raw, err := s.fetchAll(ctx, cat, view.Indicator, to, force)
	if err != nil {
		log.Error("batch failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}

	snap, err := Compute(cat, raw, view)
	if err != nil {
		log.Error("composite computation failed", "error", err)
		return nil, err
	}

	snap.FetchedAt = now
	snap.BatchID = batch
	snap.From = s.cfg.From
	snap.To = to

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	log.Info("snapshot ready", "observations", snap.TotalPoints(), "took", time.Since(now))
	return snap, nil
}

// fetchAll fires every request at once and waits for all of them. The first
// failure cancels the rest.
func (s *Service) fetchAll(ctx context.Context, cat *catalog.Catalog, indicator models.Indicator, to models.CalendarDate, force bool) (map[string]models.NamedSeries, error) {
	ids := cat.IDs()
	results := make([]models.NamedSeries, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		q := transparency.Query{
			PointID:   id,
			Indicator: indicator,
			From:      s.cfg.From,
			To:        to,
			Timezone:  s.cfg.Timezone,
		}
		g.Go(func() error {
			var (
				res models.NamedSeries
				err error
			)
			if force {
				res, err = s.source.Refresh(gctx, q)
			} else {
				res, err = s.source.Fetch(gctx, q)
			}
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw := make(map[string]models.NamedSeries, len(ids))
	for i, id := range ids {
		raw[id] = results[i]
	}
	return raw, nil
}

// Compute converts raw series keyed by point ID and builds every composite of
// the catalog. The factor is applied to each series before aggregation.
// An unknown composite member aborts the whole computation; alignment
// failures are recorded on the affected composite only.
func Compute(cat *catalog.Catalog, raw map[string]models.NamedSeries, view models.ViewConfig) (*models.Snapshot, error) {
	factor := series.FactorFor(view)

	scaled := make(map[string]models.NamedSeries, len(raw))
	points := make([]models.NamedSeries, 0, len(cat.Points))
	for _, id := range cat.IDs() {
		s, ok := raw[id]
		if !ok {
			return nil, &series.UnknownSeriesError{Name: id}
		}
		conv := series.Scale(s, factor)
		scaled[id] = conv
		points = append(points, models.NamedSeries{Name: cat.Label(id), Points: conv.Points})
	}

	composites := make([]models.CompositeResult, 0, len(cat.Composites))
	for _, def := range cat.Composites {
		cs, aligned, err := series.Aggregate(def.Name, scaled, def.Members, view.Align, view.ValidateAxes)
		if errors.Is(err, series.ErrUnknownSeries) {
			return nil, fmt.Errorf("composite %q: %w", def.Name, err)
		}

		labels := make([]string, len(def.Members))
		for i, m := range def.Members {
			labels[i] = cat.Label(m)
		}
		cs.Members = labels

		if err != nil {
			logger.Warn("composite not computed", "composite", def.Name, "error", err)
		}
		composites = append(composites, models.CompositeResult{
			Err:         err,
			Series:      cs,
			AlignedDays: aligned,
		})
	}

	return &models.Snapshot{
		Points:     points,
		Composites: composites,
		View:       view,
		Factor:     factor,
	}, nil
}

// Last returns the most recent snapshot, or nil.
func (s *Service) Last() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
