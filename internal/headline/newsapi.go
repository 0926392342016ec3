package headline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	newsAPIDefaultURL      = "https://newsapi.org/v2/top-headlines"
	newsAPIDefaultCountry  = "us"
	newsAPIDefaultPageSize = 10
	newsAPIMaxRetryAfter   = 30 * time.Second
)

// NewsAPISource fetches top headlines from NewsAPI.org.
type NewsAPISource struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	backoffs   []time.Duration
	apiKey     string
	baseURL    string
	country    string
	category   string
	pageSize   int
}

// NewsAPIConfig holds configuration for the NewsAPI source.
type NewsAPIConfig struct {
	APIKey   string
	BaseURL  string // default: https://newsapi.org/v2/top-headlines
	Country  string // default: us
	Category string // optional, e.g. "technology"
	PageSize int    // default: 10
}

// NewNewsAPISource creates a new NewsAPI source.
func NewNewsAPISource(cfg NewsAPIConfig) *NewsAPISource {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = newsAPIDefaultURL
	}

	country := cfg.Country
	if country == "" {
		country = newsAPIDefaultCountry
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = newsAPIDefaultPageSize
	}

	return &NewsAPISource{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		backoffs: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		country:  country,
		category: cfg.Category,
		pageSize: pageSize,
	}
}

// Name returns the source name.
func (n *NewsAPISource) Name() string {
	return "newsapi"
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch retrieves the current top headlines.
func (n *NewsAPISource) Fetch(ctx context.Context) ([]Headline, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("apiKey", n.apiKey)
	params.Set("country", n.country)
	params.Set("pageSize", strconv.Itoa(n.pageSize))
	if n.category != "" {
		params.Set("category", n.category)
	}

	body, err := n.doWithRetry(ctx, n.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp newsAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("NewsAPI error fetching news: %s", resp.Message)
	}

	headlines := make([]Headline, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		h := Headline{
			Source:      a.Source.Name,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
		}
		if h.Source == "" {
			h.Source = n.Name()
		}
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			h.PublishedAt = t
		}
		h.ExternalID = Hash(h)

		headlines = append(headlines, h)
	}

	slog.Debug("fetched NewsAPI headlines", "count", len(headlines), "total", resp.TotalResults)
	return headlines, nil
}

// doWithRetry performs a GET, retrying transport failures, 429 and 5xx
// responses with the configured backoffs. Retry-After is honoured on 429.
func (n *NewsAPISource) doWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	maxRetries := len(n.backoffs)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := n.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			if err := n.wait(ctx, attempt, 0); err != nil {
				return nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("read response: %w", readErr)
			if err := n.wait(ctx, attempt, 0); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("NewsAPI error (status %d): %s", resp.StatusCode, apiMessage(body))

			var retryAfter time.Duration
			if resp.StatusCode == http.StatusTooManyRequests {
				retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
			}
			slog.Warn("NewsAPI request failed, retrying", "status", resp.StatusCode, "attempt", attempt+1)
			if err := n.wait(ctx, attempt, retryAfter); err != nil {
				return nil, err
			}
			continue
		}

		return nil, fmt.Errorf("NewsAPI error (status %d): %s", resp.StatusCode, apiMessage(body))
	}

	return nil, fmt.Errorf("NewsAPI request failed after %d retries: %w", maxRetries, lastErr)
}

// wait sleeps before the next attempt unless attempt was the last one.
func (n *NewsAPISource) wait(ctx context.Context, attempt int, override time.Duration) error {
	if attempt >= len(n.backoffs) {
		return nil
	}

	delay := n.backoffs[attempt]
	if override > 0 {
		delay = override
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func parseRetryAfter(v string) time.Duration {
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return 0
	}
	d := time.Duration(seconds) * time.Second
	if d > newsAPIMaxRetryAfter {
		d = newsAPIMaxRetryAfter
	}
	return d
}

// apiMessage extracts NewsAPI's error message from a response body.
func apiMessage(body []byte) string {
	var resp newsAPIResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		return resp.Message
	}
	return string(body)
}
