package headline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	hnDefaultURL = "https://hacker-news.firebaseio.com/v0"
	hnTopStories = "/topstories.json"
	hnItem       = "/item/%d.json"
	hnDefaultMax = 30
)

// HackerNewsSource fetches top stories from Hacker News.
type HackerNewsSource struct {
	httpClient *http.Client
	baseURL    string
	maxStories int
}

// HackerNewsConfig holds configuration for the HN source.
type HackerNewsConfig struct {
	BaseURL    string
	MaxStories int
}

// NewHackerNewsSource creates a new Hacker News source.
func NewHackerNewsSource(cfg HackerNewsConfig) *HackerNewsSource {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = hnDefaultURL
	}

	maxStories := cfg.MaxStories
	if maxStories <= 0 {
		maxStories = hnDefaultMax
	}

	return &HackerNewsSource{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:    baseURL,
		maxStories: maxStories,
	}
}

// Name returns the source name.
func (h *HackerNewsSource) Name() string {
	return "hackernews"
}

// hnStory represents a Hacker News item.
type hnStory struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"` // For self-posts
	Score int    `json:"score"`
	Time  int64  `json:"time"`
	Type  string `json:"type"`
}

// Fetch retrieves top stories, keeping their ranking order.
func (h *HackerNewsSource) Fetch(ctx context.Context) ([]Headline, error) {
	ids, err := h.fetchTopStoryIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch top stories: %w", err)
	}

	if len(ids) > h.maxStories {
		ids = ids[:h.maxStories]
	}

	// Fetch story details concurrently; each goroutine owns its slot.
	stories := make([]*hnStory, len(ids))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for i, id := range ids {
		wg.Add(1)
		go func(idx int, storyID int) {
			defer wg.Done()

			story, err := h.fetchStory(ctx, storyID)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			stories[idx] = story
		}(i, id)
	}

	wg.Wait()

	if failed > 0 {
		slog.Warn("some HN stories failed to fetch", "errors", failed)
	}

	headlines := make([]Headline, 0, len(stories))
	for _, story := range stories {
		if story == nil || story.Type != "story" {
			continue
		}

		var published time.Time
		if story.Time > 0 {
			published = time.Unix(story.Time, 0).UTC()
		}

		headlines = append(headlines, Headline{
			Source:      h.Name(),
			ExternalID:  strconv.Itoa(story.ID),
			Title:       story.Title,
			URL:         story.URL,
			Description: truncate(story.Text, 500),
			PublishedAt: published,
		})
	}

	slog.Debug("fetched HN headlines", "count", len(headlines))
	return headlines, nil
}

func (h *HackerNewsSource) fetchTopStoryIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := h.getJSON(ctx, h.baseURL+hnTopStories, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (h *HackerNewsSource) fetchStory(ctx context.Context, id int) (*hnStory, error) {
	var story hnStory
	if err := h.getJSON(ctx, h.baseURL+fmt.Sprintf(hnItem, id), &story); err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}
	return &story, nil
}

func (h *HackerNewsSource) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HN API returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// truncate shortens a string to maxLen bytes, adding ellipsis if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
