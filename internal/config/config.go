package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Storage
	DatabasePath string
	DataDir      string // Daily CSV snapshots (default: data)

	// NewsAPI (source is enabled only when the key is set)
	NewsAPIKey      string
	NewsAPIURL      string
	NewsAPICountry  string
	NewsAPICategory string
	NewsAPIPageSize int

	// Hacker News
	HNMaxStories int

	// Reddit OAuth (source is enabled only when both credentials are set)
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string

	// RSS/Atom feeds
	RSSFeeds []string

	// Filtering
	BlockedTerms []string

	// Pairing
	NPairs       int
	PairSeed     uint64        // 0 means unseeded
	MaxHeadlines int           // Largest collection a single pairing accepts
	PairWindow   time.Duration // How far back archived headlines are considered

	// Daemon
	FetchInterval time.Duration
	HTTPAddr      string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:       getEnv("DATABASE_PATH", "data/novelpair.db"),
		DataDir:            getEnv("DATA_DIR", "data"),
		NewsAPIKey:         getEnv("NEWS_API_KEY", ""),
		NewsAPIURL:         getEnv("NEWS_API_URL", "https://newsapi.org/v2/top-headlines"),
		NewsAPICountry:     getEnv("NEWS_COUNTRY", "us"),
		NewsAPICategory:    getEnv("NEWS_CATEGORY", "technology"),
		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "novelpair:v1.0.0"),
		RSSFeeds:           splitList(getEnv("RSS_FEEDS", "")),
		BlockedTerms:       splitList(getEnv("BLOCKED_TERMS", "")),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	// Parse durations
	var err error
	cfg.PairWindow, err = time.ParseDuration(getEnv("PAIR_WINDOW", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAIR_WINDOW: %w", err)
	}

	cfg.FetchInterval, err = time.ParseDuration(getEnv("FETCH_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}

	// Parse integers
	if cfg.NewsAPIPageSize, err = getInt("NEWS_PAGE_SIZE", 10); err != nil {
		return nil, err
	}
	if cfg.HNMaxStories, err = getInt("HN_MAX_STORIES", 30); err != nil {
		return nil, err
	}
	if cfg.NPairs, err = getInt("N_PAIRS", 5); err != nil {
		return nil, err
	}
	if cfg.MaxHeadlines, err = getInt("MAX_HEADLINES", 500); err != nil {
		return nil, err
	}

	cfg.PairSeed, err = strconv.ParseUint(getEnv("PAIR_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAIR_SEED: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForFetch checks configuration needed for headline acquisition.
func (c *Config) ValidateForFetch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	// Hacker News works without auth; Reddit needs both halves of its credentials
	if (c.RedditClientID == "") != (c.RedditClientSecret == "") {
		return fmt.Errorf("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET must be set together")
	}
	if c.NewsAPIPageSize <= 0 || c.NewsAPIPageSize > 100 {
		return fmt.Errorf("NEWS_PAGE_SIZE must be between 1 and 100")
	}
	return nil
}

// ValidateForPairing checks configuration needed for pairing.
func (c *Config) ValidateForPairing() error {
	if c.NPairs < 0 {
		return fmt.Errorf("N_PAIRS must not be negative")
	}
	if c.MaxHeadlines < 2 {
		return fmt.Errorf("MAX_HEADLINES must be at least 2")
	}
	if c.PairWindow <= 0 {
		return fmt.Errorf("PAIR_WINDOW must be positive")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForFetch(); err != nil {
		return err
	}
	if err := c.ValidateForPairing(); err != nil {
		return err
	}
	if c.FetchInterval <= 0 {
		return fmt.Errorf("FETCH_INTERVAL must be positive")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	return nil
}

// HasNewsAPI reports whether the NewsAPI source is configured.
func (c *Config) HasNewsAPI() bool {
	return c.NewsAPIKey != ""
}

// HasReddit reports whether the Reddit source is configured.
func (c *Config) HasReddit() bool {
	return c.RedditClientID != "" && c.RedditClientSecret != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultVal)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
