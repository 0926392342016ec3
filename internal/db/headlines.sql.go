package db

import (
	"context"
	"database/sql"
)

const headlineColumns = `id, source, external_id, title, description, url, published_at, fetched_at`

func scanHeadline(row interface{ Scan(...any) error }) (*Headline, error) {
	var h Headline
	err := row.Scan(
		&h.ID,
		&h.Source,
		&h.ExternalID,
		&h.Title,
		&h.Description,
		&h.Url,
		&h.PublishedAt,
		&h.FetchedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const insertHeadline = `
INSERT INTO headlines (source, external_id, title, description, url, published_at, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (source, external_id) DO NOTHING
`

// InsertHeadlineParams holds the columns of a new headline.
type InsertHeadlineParams struct {
	Source      string
	ExternalID  string
	Title       string
	Description sql.NullString
	Url         sql.NullString
	PublishedAt sql.NullString
	FetchedAt   string
}

// InsertHeadline stores a headline unless one with the same source and
// external ID exists. It reports whether a row was inserted.
func (q *Queries) InsertHeadline(ctx context.Context, arg InsertHeadlineParams) (bool, error) {
	res, err := q.db.ExecContext(ctx, insertHeadline,
		arg.Source,
		arg.ExternalID,
		arg.Title,
		arg.Description,
		arg.Url,
		arg.PublishedAt,
		arg.FetchedAt,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const getHeadlineBySourceAndExternalID = `
SELECT ` + headlineColumns + ` FROM headlines
WHERE source = ? AND external_id = ?
`

// GetHeadlineBySourceAndExternalID returns sql.ErrNoRows when absent.
func (q *Queries) GetHeadlineBySourceAndExternalID(ctx context.Context, source, externalID string) (*Headline, error) {
	row := q.db.QueryRowContext(ctx, getHeadlineBySourceAndExternalID, source, externalID)
	return scanHeadline(row)
}

const listHeadlinesSince = `
SELECT ` + headlineColumns + ` FROM (
    SELECT ` + headlineColumns + ` FROM headlines
    WHERE fetched_at >= ?
    ORDER BY id DESC
    LIMIT ?
) ORDER BY id ASC
`

// ListHeadlinesSince returns the newest limit headlines fetched at or after
// since (RFC 3339), oldest first.
func (q *Queries) ListHeadlinesSince(ctx context.Context, since string, limit int64) ([]*Headline, error) {
	rows, err := q.db.QueryContext(ctx, listHeadlinesSince, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Headline
	for rows.Next() {
		h, err := scanHeadline(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countHeadlines = `SELECT COUNT(*) FROM headlines`

// CountHeadlines returns the number of archived headlines.
func (q *Queries) CountHeadlines(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countHeadlines).Scan(&count)
	return count, err
}

const countHeadlinesBySource = `
SELECT source, COUNT(*) FROM headlines
GROUP BY source
ORDER BY COUNT(*) DESC, source ASC
`

// CountHeadlinesBySource returns headline counts per source.
func (q *Queries) CountHeadlinesBySource(ctx context.Context) ([]CountHeadlinesBySourceRow, error) {
	rows, err := q.db.QueryContext(ctx, countHeadlinesBySource)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountHeadlinesBySourceRow
	for rows.Next() {
		var i CountHeadlinesBySourceRow
		if err := rows.Scan(&i.Source, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
