package db

import (
	"database/sql"
)

// Headline is an archived headline row. Timestamps are RFC 3339 UTC text.
type Headline struct {
	ID          int64
	Source      string
	ExternalID  string
	Title       string
	Description sql.NullString
	Url         sql.NullString
	PublishedAt sql.NullString
	FetchedAt   string
}

// PairRun records one ranked pair list produced by the pairer.
type PairRun struct {
	ID            string
	HeadlineCount int64
	PairCount     int64
	Seed          int64
	CreatedAt     string
}

// Pair is one ranked entry of a pair run.
type Pair struct {
	ID       int64
	RunID    string
	Rank     int64
	TopicA   string
	TopicB   string
	Distance float64
}

// CountHeadlinesBySourceRow is a per-source headline count.
type CountHeadlinesBySourceRow struct {
	Source string
	Count  int64
}
