// Package headline acquires news headlines from external sources and shapes
// them into the ordered collections the pairer works on.
package headline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Headline is a single news item. Only Title takes part in pairing; the rest
// is carried through untouched.
type Headline struct {
	Source      string
	ExternalID  string
	Title       string
	Description string
	URL         string
	PublishedAt time.Time
}

// Source is the interface for headline providers.
type Source interface {
	// Name returns the name of this source.
	Name() string

	// Fetch retrieves the current headlines from the source.
	Fetch(ctx context.Context) ([]Headline, error)
}

// Titles returns the titles of a collection in order.
func Titles(headlines []Headline) []string {
	titles := make([]string, len(headlines))
	for i, h := range headlines {
		titles[i] = h.Title
	}
	return titles
}

// Hash generates a stable identifier for a headline (used when a source has no ID of its own).
func Hash(h Headline) string {
	data := fmt.Sprintf("%s:%s:%s", h.Source, h.URL, h.Title)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:16])
}
