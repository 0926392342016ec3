// Package scheduler runs the daemon's periodic headline fetch and tracks
// component health.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abdulachik/novelpair/internal/export"
	"github.com/abdulachik/novelpair/internal/headline"
)

const defaultInterval = time.Hour

// Fetcher acquires and archives one round of headlines.
type Fetcher interface {
	FetchAndStore(ctx context.Context) (*headline.FetchResult, error)
}

// Pinger checks that the archive is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Scheduler orchestrates the periodic tasks of the daemon.
type Scheduler struct {
	fetcher  Fetcher
	db       Pinger
	interval time.Duration
	dataDir  string
	health   *Health
	now      func() time.Time

	mu        sync.RWMutex // guards lastFetch
	lastFetch time.Time
}

// Config holds scheduler configuration.
type Config struct {
	Fetcher  Fetcher
	DB       Pinger        // Optional: reported as the database component
	Interval time.Duration // default: 1h
	DataDir  string        // Optional: directory for daily CSV snapshots
}

// New creates a new scheduler.
func New(cfg Config) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Scheduler{
		fetcher:  cfg.Fetcher,
		db:       cfg.DB,
		interval: interval,
		dataDir:  cfg.DataDir,
		health:   NewHealth(),
		now:      time.Now,
	}
}

// Run fetches once immediately and then every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("starting scheduler",
		"fetch_interval", s.interval,
		"snapshots", s.dataDir != "",
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runFetchCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runFetchCycle(ctx)
		}
	}
}

// runFetchCycle checks the archive, fetches new headlines and writes the
// day's snapshot.
func (s *Scheduler) runFetchCycle(ctx context.Context) {
	slog.Debug("running fetch cycle")

	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			s.health.SetUnhealthy(ComponentDatabase, fmt.Errorf("ping database: %w", err))
			slog.Error("database unreachable", "error", err)
		} else {
			s.health.SetHealthy(ComponentDatabase, "reachable")
		}
	}

	result, err := s.fetcher.FetchAndStore(ctx)
	if err != nil {
		s.health.SetUnhealthy(ComponentFetch, err)
		slog.Error("fetch cycle failed", "error", err)
		return
	}

	s.health.SetHealthy(ComponentFetch, fmt.Sprintf("fetched %d headlines", len(result.Headlines)))

	s.mu.Lock()
	s.lastFetch = s.now()
	s.mu.Unlock()

	if s.dataDir != "" {
		path, err := export.SaveDaily(s.dataDir, s.now(), result.Headlines)
		if err != nil {
			slog.Warn("failed to write daily snapshot", "error", err)
		} else {
			slog.Debug("wrote daily snapshot", "path", path)
		}
	}

	slog.Info("fetch cycle complete",
		"headlines", len(result.Headlines),
		"new_stored", result.Stored,
	)
}

// LastFetch returns when the last successful fetch finished.
func (s *Scheduler) LastFetch() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch
}

// Health returns the health tracker.
func (s *Scheduler) Health() *Health {
	return s.health
}
