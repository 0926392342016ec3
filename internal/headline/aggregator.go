package headline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdulachik/novelpair/internal/db"
)

// Aggregator combines headlines from multiple sources into one collection.
type Aggregator struct {
	sources []Source
	filter  *Filter
	store   *db.Store
	now     func() time.Time
}

// AggregatorConfig holds aggregator configuration.
type AggregatorConfig struct {
	Store   *db.Store // Optional: archive fetched headlines
	Sources []Source
	Filter  *Filter
}

// FetchResult is the outcome of one aggregation pass.
type FetchResult struct {
	Headlines []Headline // filtered collection in source order
	Fetched   int        // before filtering
	Stored    int        // newly archived
}

// NewAggregator creates a new aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	filter := cfg.Filter
	if filter == nil {
		filter = NewFilter(FilterConfig{})
	}

	return &Aggregator{
		sources: cfg.Sources,
		filter:  filter,
		store:   cfg.Store,
		now:     time.Now,
	}
}

// Sources returns the configured sources.
func (a *Aggregator) Sources() []Source {
	return a.sources
}

// FetchAndStore fetches from every source, filters the result and archives
// headlines not seen before. A failing source is logged and skipped; the
// pass only fails when every source does.
func (a *Aggregator) FetchAndStore(ctx context.Context) (*FetchResult, error) {
	if len(a.sources) == 0 {
		return nil, errors.New("no headline sources configured")
	}

	var all []Headline
	var failures []error

	for _, src := range a.sources {
		slog.Debug("fetching from source", "source", src.Name())

		headlines, err := src.Fetch(ctx)
		if err != nil {
			slog.Error("source fetch failed",
				"source", src.Name(),
				"error", err,
			)
			failures = append(failures, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}

		slog.Debug("fetched headlines",
			"source", src.Name(),
			"count", len(headlines),
		)
		all = append(all, headlines...)
	}

	if len(failures) == len(a.sources) {
		return nil, fmt.Errorf("all sources failed: %w", errors.Join(failures...))
	}

	filtered := a.filter.Apply(all)
	result := &FetchResult{
		Headlines: filtered,
		Fetched:   len(all),
	}

	if a.store != nil {
		fetchedAt := a.now().UTC().Format(time.RFC3339)
		for _, h := range filtered {
			isNew, err := a.storeHeadline(ctx, h, fetchedAt)
			if err != nil {
				slog.Error("failed to store headline",
					"title", h.Title,
					"error", err,
				)
				continue
			}
			if isNew {
				result.Stored++
			}
		}
	}

	slog.Info("headline aggregation complete",
		"total_fetched", result.Fetched,
		"after_filter", len(result.Headlines),
		"new_stored", result.Stored,
	)

	return result, nil
}

func (a *Aggregator) storeHeadline(ctx context.Context, h Headline, fetchedAt string) (bool, error) {
	externalID := h.ExternalID
	if externalID == "" {
		externalID = Hash(h)
	}

	var published sql.NullString
	if !h.PublishedAt.IsZero() {
		published = sql.NullString{String: h.PublishedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	return a.store.InsertHeadline(ctx, db.InsertHeadlineParams{
		Source:      h.Source,
		ExternalID:  externalID,
		Title:       h.Title,
		Description: sql.NullString{String: h.Description, Valid: h.Description != ""},
		Url:         sql.NullString{String: h.URL, Valid: h.URL != ""},
		PublishedAt: published,
		FetchedAt:   fetchedAt,
	})
}

// Recent returns archived headlines fetched within window, at most limit, oldest first.
func Recent(ctx context.Context, store *db.Store, window time.Duration, limit int) ([]Headline, error) {
	since := time.Now().Add(-window).UTC().Format(time.RFC3339)

	rows, err := store.ListHeadlinesSince(ctx, since, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list headlines: %w", err)
	}

	return FromRows(rows), nil
}

// FromRows converts archived rows into a collection.
func FromRows(rows []*db.Headline) []Headline {
	headlines := make([]Headline, len(rows))
	for i, r := range rows {
		h := Headline{
			Source:      r.Source,
			ExternalID:  r.ExternalID,
			Title:       r.Title,
			Description: r.Description.String,
			URL:         r.Url.String,
		}
		if r.PublishedAt.Valid {
			if t, err := time.Parse(time.RFC3339, r.PublishedAt.String); err == nil {
				h.PublishedAt = t
			}
		}
		headlines[i] = h
	}
	return headlines
}
