// Package export saves headline collections as CSV snapshots and reads them back.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdulachik/novelpair/internal/headline"
)

// Header is the column layout of a snapshot.
var Header = []string{"title", "description", "url", "source", "publishedAt"}

// ErrNoTitleColumn is returned when a snapshot lacks the title column.
var ErrNoTitleColumn = errors.New("csv has no title column")

// DailyPath returns the snapshot path for the day of t, e.g. data/2026-10-17_news.csv.
func DailyPath(dir string, t time.Time) string {
	return filepath.Join(dir, t.Format("2006-01-02")+"_news.csv")
}

// WriteCSV writes headlines in collection order.
func WriteCSV(w io.Writer, headlines []headline.Headline) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, h := range headlines {
		var published string
		if !h.PublishedAt.IsZero() {
			published = h.PublishedAt.UTC().Format(time.RFC3339)
		}

		record := []string{h.Title, h.Description, h.URL, h.Source, published}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveDaily writes the snapshot for now's day into dir, replacing any earlier
// snapshot of the same day, and returns its path.
func SaveDaily(dir string, now time.Time, headlines []headline.Headline) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	path := DailyPath(dir, now)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}

	if err := WriteCSV(f, headlines); err != nil {
		f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}

	return path, nil
}

// LoadCSV reads a snapshot from path.
func LoadCSV(path string) ([]headline.Headline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	headlines, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return headlines, nil
}

// ReadCSV parses a snapshot. Columns are matched by header name; only title
// is required. Rows keep their order, and an empty title cell keeps its slot.
func ReadCSV(r io.Reader) ([]headline.Headline, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoTitleColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, ErrNoTitleColumn
	}

	cell := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var headlines []headline.Headline
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		h := headline.Headline{
			Title:       cell(record, "title"),
			Description: cell(record, "description"),
			URL:         cell(record, "url"),
			Source:      cell(record, "source"),
		}
		if v := cell(record, "publishedAt"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				h.PublishedAt = t
			}
		}

		headlines = append(headlines, h)
	}

	return headlines, nil
}
