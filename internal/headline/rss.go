package headline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSSource fetches headlines from an RSS or Atom feed.
type RSSSource struct {
	name   string
	url    string
	parser *gofeed.Parser
}

// NewRSSSource creates a feed source. An empty name falls back to the feed host.
func NewRSSSource(name, feedURL string) *RSSSource {
	if name == "" {
		name = feedURL
		if u, err := url.Parse(feedURL); err == nil && u.Host != "" {
			name = u.Host
		}
	}

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}

	return &RSSSource{
		name:   name,
		url:    feedURL,
		parser: parser,
	}
}

// Name returns the source name.
func (s *RSSSource) Name() string {
	return s.name
}

// Fetch parses the feed and returns its items in feed order.
func (s *RSSSource) Fetch(ctx context.Context) ([]Headline, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.url, err)
	}

	headlines := make([]Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		h := Headline{
			Source:      s.name,
			ExternalID:  item.GUID,
			Title:       item.Title,
			Description: truncate(item.Description, 500),
			URL:         item.Link,
			PublishedAt: published,
		}
		if h.ExternalID == "" {
			h.ExternalID = Hash(h)
		}

		headlines = append(headlines, h)
	}

	slog.Debug("fetched RSS headlines", "feed", s.name, "count", len(headlines))
	return headlines, nil
}
