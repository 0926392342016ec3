package headline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestNewsAPISource(baseURL string) *NewsAPISource {
	s := NewNewsAPISource(NewsAPIConfig{
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Category: "technology",
		PageSize: 5,
	})
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	s.backoffs = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	return s
}

func TestNewNewsAPISource(t *testing.T) {
	s := NewNewsAPISource(NewsAPIConfig{})

	assert.Equal(t, newsAPIDefaultURL, s.baseURL)
	assert.Equal(t, "us", s.country)
	assert.Equal(t, newsAPIDefaultPageSize, s.pageSize)
	assert.Empty(t, s.category)
	assert.Equal(t, "newsapi", s.Name())
}

func TestNewsAPISource_Fetch(t *testing.T) {
	t.Run("parses articles", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "test-key", q.Get("apiKey"))
			assert.Equal(t, "us", q.Get("country"))
			assert.Equal(t, "5", q.Get("pageSize"))
			assert.Equal(t, "technology", q.Get("category"))

			w.Write([]byte(`{
				"status": "ok",
				"totalResults": 2,
				"articles": [
					{"source": {"id": null, "name": "The Verge"}, "title": "New chip unveiled", "description": "Faster", "url": "https://example.com/chip", "publishedAt": "2026-10-16T12:00:00Z"},
					{"source": {"id": "bbc-news", "name": "BBC News"}, "title": "Storm hits coast", "description": null, "url": "https://example.com/storm", "publishedAt": "not a date"}
				]
			}`))
		}))
		defer server.Close()

		headlines, err := newTestNewsAPISource(server.URL).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, headlines, 2)

		assert.Equal(t, "The Verge", headlines[0].Source)
		assert.Equal(t, "New chip unveiled", headlines[0].Title)
		assert.Equal(t, "Faster", headlines[0].Description)
		assert.Equal(t, time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC), headlines[0].PublishedAt)
		assert.NotEmpty(t, headlines[0].ExternalID)

		assert.Equal(t, "BBC News", headlines[1].Source)
		assert.True(t, headlines[1].PublishedAt.IsZero())
	})

	t.Run("error status in body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "error",
				"code":    "parametersMissing",
				"message": "Required parameters are missing.",
			})
		}))
		defer server.Close()

		_, err := newTestNewsAPISource(server.URL).Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Required parameters are missing.")
	})

	t.Run("non-retryable status", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
		}))
		defer server.Close()

		_, err := newTestNewsAPISource(server.URL).Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
		assert.Contains(t, err.Error(), "Your API key is invalid.")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"status":"ok","articles":[{"source":{"name":"AP"},"title":"Recovered"}]}`))
		}))
		defer server.Close()

		headlines, err := newTestNewsAPISource(server.URL).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, headlines, 1)
		assert.Equal(t, "Recovered", headlines[0].Title)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after retries", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"status":"error","code":"rateLimited","message":"slow down"}`))
		}))
		defer server.Close()

		_, err := newTestNewsAPISource(server.URL).Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 3 retries")
		assert.Equal(t, int32(4), calls.Load())
	})
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter("5"))
	assert.Equal(t, newsAPIMaxRetryAfter, parseRetryAfter("600"))
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon"))
}
