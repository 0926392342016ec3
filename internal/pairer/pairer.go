// Package pairer selects pairs of topically distant headlines.
//
// A request normalizes the headline titles, builds a TF-IDF distance matrix
// over them, draws random index pairs and ranks the pairs by distance. Nothing
// is cached between requests.
package pairer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/abdulachik/novelpair/internal/headline"
	"github.com/abdulachik/novelpair/internal/textproc"
)

const (
	// DefaultPairs is the number of pairs drawn when the caller has no preference.
	DefaultPairs = 5

	defaultMaxHeadlines = 500
)

// Pairer orchestrates the pairing pipeline.
type Pairer struct {
	builder      *MatrixBuilder
	maxHeadlines int

	mu      sync.Mutex // guards sampler
	sampler *Sampler
}

// Config holds configuration for the pairer.
type Config struct {
	StopWords    textproc.StopWords // Terms excluded from the vocabulary
	Rand         *rand.Rand         // Optional: seeded source for reproducible draws
	MaxHeadlines int                // Soft limit on collection size (default: 500)
}

// New creates a new Pairer.
func New(cfg Config) *Pairer {
	maxHeadlines := cfg.MaxHeadlines
	if maxHeadlines <= 0 {
		maxHeadlines = defaultMaxHeadlines
	}

	return &Pairer{
		builder:      NewMatrixBuilder(cfg.StopWords),
		maxHeadlines: maxHeadlines,
		sampler:      NewSampler(cfg.Rand),
	}
}

// Distances validates the collection and returns its distance matrix.
func (p *Pairer) Distances(ctx context.Context, headlines []headline.Headline) (DistanceMatrix, error) {
	if len(headlines) < 2 {
		return nil, ErrInsufficientData
	}
	if len(headlines) > p.maxHeadlines {
		return nil, fmt.Errorf("%w: %d headlines, limit %d", ErrCollectionTooLarge, len(headlines), p.maxHeadlines)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts := textproc.NormalizeAll(headline.Titles(headlines))

	dm, err := p.builder.Build(texts)
	if err != nil {
		return nil, fmt.Errorf("build distance matrix: %w", err)
	}
	return dm, nil
}

// Pair draws n pairs from headlines and returns them most distant first.
func (p *Pairer) Pair(ctx context.Context, headlines []headline.Headline, n int) ([]Pair, error) {
	return p.pair(ctx, headlines, n, func(dm DistanceMatrix) ([]Pair, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.sampler.Sample(headlines, dm, n)
	})
}

// PairSeeded is Pair with a dedicated generator seeded with seed. The
// Pairer's own generator is left untouched.
func (p *Pairer) PairSeeded(ctx context.Context, headlines []headline.Headline, n int, seed uint64) ([]Pair, error) {
	sampler := NewSampler(NewRand(seed))
	return p.pair(ctx, headlines, n, func(dm DistanceMatrix) ([]Pair, error) {
		return sampler.Sample(headlines, dm, n)
	})
}

func (p *Pairer) pair(ctx context.Context, headlines []headline.Headline, n int, sample func(DistanceMatrix) ([]Pair, error)) ([]Pair, error) {
	if n < 0 {
		return nil, ErrInvalidPairCount
	}

	dm, err := p.Distances(ctx, headlines)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pairs, err := sample(dm)
	if err != nil {
		return nil, fmt.Errorf("sample pairs: %w", err)
	}

	if len(pairs) > 0 {
		slog.Debug("ranked headline pairs",
			"headlines", len(headlines),
			"pairs", len(pairs),
			"max_distance", pairs[0].Distance,
		)
	}

	return pairs, nil
}

// Render formats a pair for console output.
func Render(p Pair) string {
	return fmt.Sprintf("🌀 [%.2f] %s ↔ %s", p.Distance, p.TopicA, p.TopicB)
}
