// Package service provides the campaign service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/roasboard/internal/adapters/export"
	"github.com/okian/roasboard/internal/adapters/repository"
	"github.com/okian/roasboard/internal/adapters/source"
	"github.com/okian/roasboard/internal/domain/filter"
	"github.com/okian/roasboard/internal/domain/model"
	"github.com/okian/roasboard/internal/domain/pipeline"
	"github.com/okian/roasboard/pkg/logger"
	"github.com/okian/roasboard/pkg/metrics"
)

// Source provides campaign data and a cheap identity of its current state.
type Source interface {
	Fingerprint(ctx context.Context) (string, error)
	Load(ctx context.Context) (*source.Result, error)
}

// Service builds and serves the influencer summary table.
type Service struct {
	mu sync.RWMutex
	// loadMu serializes loads so concurrent misses build a table once.
	loadMu sync.Mutex

	src   Source
	store repository.Store

	// Configuration
	dataDir      string
	strictRows   bool
	cacheEntries int

	// State
	started   bool
	loads     int64
	lastSnap  *repository.Snapshot
	lastError error

	logger  logger.Logger
	logOnce sync.Once
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource replaces the default directory loader.
func WithSource(src Source) Option {
	return func(s *Service) {
		if src != nil {
			s.src = src
		}
	}
}

// WithDataDir sets the directory holding the three CSV files.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithStrictRows controls whether malformed rows fail a load.
func WithStrictRows(strict bool) Option {
	return func(s *Service) {
		s.strictRows = strict
	}
}

// WithStore replaces the default in-memory snapshot cache.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCacheEntries bounds the default snapshot cache.
func WithCacheEntries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cacheEntries = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:      "data",
		strictRows:   true,
		cacheEntries: 4,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.src == nil {
		s.src = source.NewDirLoader(s.dataDir, source.WithStrictRows(s.strictRows))
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithCapacity(s.cacheEntries))
	}
	return s
}

func (s *Service) log() logger.Logger {
	s.logOnce.Do(func() {
		if s.logger == nil {
			s.logger = logger.Get().Named("service")
		}
	})
	return s.logger
}

// Start loads the data once so configuration problems surface at startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.log().Info(ctx, "starting campaign service...",
		logger.String("dataDir", s.dataDir),
		logger.Bool("strictRows", s.strictRows),
	)
	s.mu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	s.log().Info(ctx, "campaign service started",
		logger.Int("influencers", len(snap.Rows)),
		logger.Int("rejectedRows", snap.Rejected),
	)
	return nil
}

// Stop drops cached snapshots and marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.log().Info(ctx, "stopping campaign service...")
	s.store.Invalidate(ctx)
	s.started = false
	s.log().Info(ctx, "campaign service stopped")
}

// Snapshot returns the summary table for the current state of the source
// files, building it on a cache miss.
func (s *Service) Snapshot(ctx context.Context) (*repository.Snapshot, error) {
	fp, err := s.src.Fingerprint(ctx)
	if err != nil {
		return nil, s.fail(ctx, "fingerprint", err)
	}
	if snap, err := s.store.Get(ctx, fp); err == nil {
		return snap, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Another caller may have built it while we waited.
	if snap, err := s.store.Get(ctx, fp); err == nil {
		return snap, nil
	}
	return s.build(ctx)
}

func (s *Service) build(ctx context.Context) (*repository.Snapshot, error) {
	start := time.Now()
	res, err := s.src.Load(ctx)
	if err != nil {
		metrics.RecordLoad(source.Kind(err), float64(time.Since(start).Milliseconds()))
		return nil, s.fail(ctx, "load", err)
	}

	rows := pipeline.Build(res.Dataset)
	elapsed := time.Since(start)

	snap := &repository.Snapshot{
		Fingerprint:   res.Fingerprint,
		Rows:          rows,
		SourceRows:    res.Report.Rows,
		Rejected:      len(res.Report.Rejected),
		LoadedAt:      time.Now(),
		BuildDuration: elapsed,
	}
	if err := s.store.Put(ctx, snap); err != nil {
		s.log().Warn(ctx, "snapshot not cached", logger.Error(err))
	}

	undefined := 0
	for _, r := range rows {
		if !r.ROASDefined {
			undefined++
		}
	}
	rejectedBySource := make(map[string]int, len(source.Files))
	for _, re := range res.Report.Rejected {
		rejectedBySource[re.Source]++
		s.log().Warn(ctx, "skipped malformed row",
			logger.String("source", re.Source),
			logger.Int("line", re.Line),
			logger.Error(re.Err),
		)
	}
	for _, name := range source.Files {
		metrics.UpdateSourceRows(name, res.Report.Rows[name])
		metrics.RecordRejectedRows(name, rejectedBySource[name])
	}
	metrics.UpdateSummary(len(rows), undefined, snap.LoadedAt.Unix())
	metrics.RecordLoad("ok", float64(elapsed.Milliseconds()))

	s.mu.Lock()
	s.loads++
	s.lastSnap = snap
	s.lastError = nil
	s.mu.Unlock()

	s.log().Info(ctx, "summary table built",
		logger.String("fingerprint", shortFingerprint(snap.Fingerprint)),
		logger.Int("rows", len(rows)),
		logger.Int("undefinedROAS", undefined),
		logger.Int("rejectedRows", snap.Rejected),
		logger.Duration("took", elapsed),
	)
	return snap, nil
}

func (s *Service) fail(ctx context.Context, op string, err error) error {
	kind := source.Kind(err)
	metrics.RecordErrorByComponent("source", kind)

	s.mu.Lock()
	s.lastError = err
	s.mu.Unlock()

	s.log().Error(ctx, "campaign data unavailable",
		logger.String("op", op),
		logger.String("kind", kind),
		logger.Error(err),
	)
	return err
}

// Query filters the current table and summarizes the result.
func (s *Service) Query(ctx context.Context, c filter.Criteria) (*filter.View, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view := filter.NewView(snap.Fingerprint, snap.Rows, c)
	metrics.RecordFilterResult(len(view.Rows))
	return view, nil
}

// TopN returns up to n filtered rows ranked by ROAS.
func (s *Service) TopN(ctx context.Context, c filter.Criteria, n int) ([]model.InfluencerSummary, error) {
	view, err := s.Query(ctx, c)
	if err != nil {
		return nil, err
	}
	return filter.TopByROAS(view.Rows, n), nil
}

// Spread returns the filtered rows ordered by payout.
func (s *Service) Spread(ctx context.Context, c filter.Criteria) ([]model.InfluencerSummary, error) {
	view, err := s.Query(ctx, c)
	if err != nil {
		return nil, err
	}
	return filter.Spread(view.Rows), nil
}

// Export writes the filtered rows as CSV to w.
func (s *Service) Export(ctx context.Context, c filter.Criteria, w io.Writer) error {
	view, err := s.Query(ctx, c)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, view.Rows); err != nil {
		metrics.RecordErrorByComponent("export", "write")
		return err
	}
	metrics.RecordExport()
	return nil
}

// Options lists the platforms and categories present in the table.
func (s *Service) Options(ctx context.Context) (filter.Options, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return filter.Options{}, err
	}
	return filter.Choices(snap.Rows), nil
}

// Reload drops every cached table and builds a fresh one.
func (s *Service) Reload(ctx context.Context) (*repository.Snapshot, error) {
	s.loadMu.Lock()
	s.store.Invalidate(ctx)
	s.loadMu.Unlock()

	s.log().Info(ctx, "reload requested")
	return s.Snapshot(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"dataDir":      s.dataDir,
		"strictRows":   s.strictRows,
		"cacheEntries": s.cacheEntries,
		"cached":       s.store.Len(context.Background()),
		"loads":        s.loads,
	}
	if s.lastSnap != nil {
		stats["fingerprint"] = s.lastSnap.Fingerprint
		stats["summaryRows"] = len(s.lastSnap.Rows)
		stats["rejectedRows"] = s.lastSnap.Rejected
		stats["sourceRows"] = s.lastSnap.SourceRows
		stats["loadedAt"] = s.lastSnap.LoadedAt.UTC().Format(time.RFC3339)
		stats["buildMs"] = s.lastSnap.BuildDuration.Milliseconds()
	}
	if s.lastError != nil {
		stats["lastError"] = s.lastError.Error()
	}
	return stats
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
