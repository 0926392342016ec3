package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env and restore after test
	origEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range origEnv {
			for i := 0; i < len(e); i++ {
				if e[i] == '=' {
					os.Setenv(e[:i], e[i+1:])
					break
				}
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/novelpair.db", cfg.DatabasePath)
		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, "https://newsapi.org/v2/top-headlines", cfg.NewsAPIURL)
		assert.Equal(t, "us", cfg.NewsAPICountry)
		assert.Equal(t, "technology", cfg.NewsAPICategory)
		assert.Equal(t, 10, cfg.NewsAPIPageSize)
		assert.Equal(t, 30, cfg.HNMaxStories)
		assert.Equal(t, 5, cfg.NPairs)
		assert.Equal(t, uint64(0), cfg.PairSeed)
		assert.Equal(t, 500, cfg.MaxHeadlines)
		assert.Equal(t, 24*time.Hour, cfg.PairWindow)
		assert.Equal(t, time.Hour, cfg.FetchInterval)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.RSSFeeds)
		assert.False(t, cfg.HasNewsAPI())
		assert.False(t, cfg.HasReddit())
	})

	t.Run("custom values", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("DATABASE_PATH", "/custom/path.db")
		os.Setenv("NEWS_API_KEY", "key")
		os.Setenv("RSS_FEEDS", "https://a.example/rss, ,https://b.example/atom")
		os.Setenv("BLOCKED_TERMS", "sponsored,crypto")
		os.Setenv("N_PAIRS", "8")
		os.Setenv("PAIR_SEED", "42")
		os.Setenv("FETCH_INTERVAL", "15m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
		assert.True(t, cfg.HasNewsAPI())
		assert.Equal(t, []string{"https://a.example/rss", "https://b.example/atom"}, cfg.RSSFeeds)
		assert.Equal(t, []string{"sponsored", "crypto"}, cfg.BlockedTerms)
		assert.Equal(t, 8, cfg.NPairs)
		assert.Equal(t, uint64(42), cfg.PairSeed)
		assert.Equal(t, 15*time.Minute, cfg.FetchInterval)
	})

	t.Run("invalid duration", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PAIR_WINDOW", "invalid")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "PAIR_WINDOW")
	})

	t.Run("invalid integer", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("N_PAIRS", "notanumber")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "N_PAIRS")
	})

	t.Run("invalid seed", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PAIR_SEED", "-1")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "PAIR_SEED")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_PATH")
	})
}

func TestConfig_ValidateForFetch(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"hacker news only", Config{DatabasePath: "test.db", NewsAPIPageSize: 10}, ""},
		{"reddit complete", Config{DatabasePath: "test.db", NewsAPIPageSize: 10, RedditClientID: "id", RedditClientSecret: "secret"}, ""},
		{"reddit missing secret", Config{DatabasePath: "test.db", NewsAPIPageSize: 10, RedditClientID: "id"}, "REDDIT_CLIENT_SECRET"},
		{"page size too large", Config{DatabasePath: "test.db", NewsAPIPageSize: 101}, "NEWS_PAGE_SIZE"},
		{"missing database", Config{NewsAPIPageSize: 10}, "DATABASE_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateForFetch()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateForPairing(t *testing.T) {
	valid := Config{NPairs: 5, MaxHeadlines: 500, PairWindow: time.Hour}
	assert.NoError(t, valid.ValidateForPairing())

	zeroPairs := valid
	zeroPairs.NPairs = 0
	assert.NoError(t, zeroPairs.ValidateForPairing())

	negative := valid
	negative.NPairs = -1
	assert.ErrorContains(t, negative.ValidateForPairing(), "N_PAIRS")

	tiny := valid
	tiny.MaxHeadlines = 1
	assert.ErrorContains(t, tiny.ValidateForPairing(), "MAX_HEADLINES")
}

func TestConfig_ValidateForServe(t *testing.T) {
	cfg := &Config{
		DatabasePath:    "test.db",
		NewsAPIPageSize: 10,
		NPairs:          5,
		MaxHeadlines:    500,
		PairWindow:      24 * time.Hour,
		FetchInterval:   time.Hour,
		HTTPAddr:        ":8080",
	}
	assert.NoError(t, cfg.ValidateForServe())

	cfg.HTTPAddr = ""
	assert.ErrorContains(t, cfg.ValidateForServe(), "HTTP_ADDR")
}
