// Package app wires configuration, storage, sources and the pairer together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/novelpair/internal/config"
	"github.com/abdulachik/novelpair/internal/db"
	"github.com/abdulachik/novelpair/internal/headline"
	"github.com/abdulachik/novelpair/internal/pairer"
	"github.com/abdulachik/novelpair/internal/textproc"
)

// App is the main application container holding all dependencies.
type App struct {
	Config     *config.Config
	Store      *db.Store
	StopWords  textproc.StopWords
	Pairer     *pairer.Pairer
	Aggregator *headline.Aggregator
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	stop, err := textproc.EnglishStopWords()
	if err != nil {
		store.Close()
		return nil, err
	}

	p := pairer.New(pairer.Config{
		StopWords:    stop,
		Rand:         pairer.NewRand(cfg.PairSeed),
		MaxHeadlines: cfg.MaxHeadlines,
	})

	agg := headline.NewAggregator(headline.AggregatorConfig{
		Store:   store,
		Sources: Sources(cfg),
		Filter:  headline.NewFilter(headline.FilterConfig{BlockedTerms: cfg.BlockedTerms}),
	})

	return &App{
		Config:     cfg,
		Store:      store,
		StopWords:  stop,
		Pairer:     p,
		Aggregator: agg,
	}, nil
}

// Sources builds the headline sources enabled by cfg. Hacker News is always on.
func Sources(cfg *config.Config) []headline.Source {
	var sources []headline.Source

	if cfg.HasNewsAPI() {
		sources = append(sources, headline.NewNewsAPISource(headline.NewsAPIConfig{
			APIKey:   cfg.NewsAPIKey,
			BaseURL:  cfg.NewsAPIURL,
			Country:  cfg.NewsAPICountry,
			Category: cfg.NewsAPICategory,
			PageSize: cfg.NewsAPIPageSize,
		}))
	}

	sources = append(sources, headline.NewHackerNewsSource(headline.HackerNewsConfig{
		MaxStories: cfg.HNMaxStories,
	}))

	if cfg.HasReddit() {
		sources = append(sources, headline.NewRedditSource(headline.RedditConfig{
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			UserAgent:    cfg.RedditUserAgent,
		}))
	}

	for _, feed := range cfg.RSSFeeds {
		sources = append(sources, headline.NewRSSSource("", feed))
	}

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	slog.Debug("configured headline sources", "sources", names)

	return sources
}

// RecentHeadlines returns archived headlines inside the pairing window.
func (a *App) RecentHeadlines(ctx context.Context) ([]headline.Headline, error) {
	headlines, err := headline.Recent(ctx, a.Store, a.Config.PairWindow, a.Config.MaxHeadlines)
	if err != nil {
		return nil, fmt.Errorf("load recent headlines: %w", err)
	}
	return headlines, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
