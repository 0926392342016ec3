package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdulachik/novelpair/internal/db"
	"github.com/abdulachik/novelpair/internal/pairer"
	"github.com/google/uuid"
)

// RecordRun archives a ranked pair list under a fresh run ID.
func RecordRun(ctx context.Context, store *db.Store, pairs []pairer.Pair, headlineCount int, seed uint64) (*db.PairRun, error) {
	run := db.PairRun{
		ID:            uuid.NewString(),
		HeadlineCount: int64(headlineCount),
		PairCount:     int64(len(pairs)),
		Seed:          int64(seed),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	params := make([]db.CreatePairParams, len(pairs))
	for i, p := range pairs {
		params[i] = db.CreatePairParams{
			RunID:    run.ID,
			Rank:     int64(i + 1),
			TopicA:   p.TopicA,
			TopicB:   p.TopicB,
			Distance: p.Distance,
		}
	}

	if err := store.RecordPairRun(ctx, run, params); err != nil {
		return nil, fmt.Errorf("record pair run: %w", err)
	}

	slog.Info("recorded pair run", "run_id", run.ID, "pairs", len(pairs))
	return &run, nil
}
