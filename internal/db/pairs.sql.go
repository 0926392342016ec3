package db

import (
	"context"
	"fmt"
)

const createPairRun = `
INSERT INTO pair_runs (id, headline_count, pair_count, seed, created_at)
VALUES (?, ?, ?, ?, ?)
`

// CreatePairRun inserts a pair run header.
func (q *Queries) CreatePairRun(ctx context.Context, arg PairRun) error {
	_, err := q.db.ExecContext(ctx, createPairRun,
		arg.ID,
		arg.HeadlineCount,
		arg.PairCount,
		arg.Seed,
		arg.CreatedAt,
	)
	return err
}

const createPair = `
INSERT INTO pairs (run_id, rank, topic_a, topic_b, distance)
VALUES (?, ?, ?, ?, ?)
`

// CreatePairParams holds the columns of a ranked pair.
type CreatePairParams struct {
	RunID    string
	Rank     int64
	TopicA   string
	TopicB   string
	Distance float64
}

// CreatePair inserts one ranked pair.
func (q *Queries) CreatePair(ctx context.Context, arg CreatePairParams) error {
	_, err := q.db.ExecContext(ctx, createPair,
		arg.RunID,
		arg.Rank,
		arg.TopicA,
		arg.TopicB,
		arg.Distance,
	)
	return err
}

const getLatestPairRun = `
SELECT id, headline_count, pair_count, seed, created_at FROM pair_runs
ORDER BY created_at DESC, rowid DESC
LIMIT 1
`

// GetLatestPairRun returns sql.ErrNoRows when no run was recorded.
func (q *Queries) GetLatestPairRun(ctx context.Context) (*PairRun, error) {
	var r PairRun
	err := q.db.QueryRowContext(ctx, getLatestPairRun).Scan(
		&r.ID,
		&r.HeadlineCount,
		&r.PairCount,
		&r.Seed,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const listPairsByRun = `
SELECT id, run_id, rank, topic_a, topic_b, distance FROM pairs
WHERE run_id = ?
ORDER BY rank ASC
`

// ListPairsByRun returns a run's pairs in rank order.
func (q *Queries) ListPairsByRun(ctx context.Context, runID string) ([]*Pair, error) {
	rows, err := q.db.QueryContext(ctx, listPairsByRun, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.ID, &p.RunID, &p.Rank, &p.TopicA, &p.TopicB, &p.Distance); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countPairRuns = `SELECT COUNT(*) FROM pair_runs`

// CountPairRuns returns the number of recorded runs.
func (q *Queries) CountPairRuns(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPairRuns).Scan(&count)
	return count, err
}

// RecordPairRun stores a run and its ranked pairs in one transaction.
func (s *Store) RecordPairRun(ctx context.Context, run PairRun, pairs []CreatePairParams) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.WithTx(tx)
	if err := qtx.CreatePairRun(ctx, run); err != nil {
		return fmt.Errorf("create pair run: %w", err)
	}

	for _, p := range pairs {
		p.RunID = run.ID
		if err := qtx.CreatePair(ctx, p); err != nil {
			return fmt.Errorf("create pair %d: %w", p.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pair run: %w", err)
	}
	return nil
}
