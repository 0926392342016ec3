package headline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	redditDefaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	redditDefaultAPIURL  = "https://oauth.reddit.com"
	redditDefaultMax     = 25
	redditPerSubreddit   = 10
)

// RedditSource fetches hot posts from news-oriented subreddits.
type RedditSource struct {
	httpClient   *http.Client
	authURL      string
	apiURL       string
	clientID     string
	clientSecret string
	userAgent    string
	subreddits   []string
	maxPosts     int

	mu          sync.Mutex // guards accessToken and tokenExpiry
	accessToken string
	tokenExpiry time.Time
}

// RedditConfig holds configuration for the Reddit source.
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Subreddits   []string
	MaxPosts     int
	AuthURL      string
	APIURL       string
}

// NewRedditSource creates a new Reddit source.
func NewRedditSource(cfg RedditConfig) *RedditSource {
	subreddits := cfg.Subreddits
	if len(subreddits) == 0 {
		subreddits = []string{
			"news",
			"worldnews",
			"science",
			"technology",
			"UpliftingNews",
		}
	}

	maxPosts := cfg.MaxPosts
	if maxPosts <= 0 {
		maxPosts = redditDefaultMax
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = redditDefaultAuthURL
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = redditDefaultAPIURL
	}

	return &RedditSource{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		authURL:      authURL,
		apiURL:       apiURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		userAgent:    cfg.UserAgent,
		subreddits:   subreddits,
		maxPosts:     maxPosts,
	}
}

// Name returns the source name.
func (r *RedditSource) Name() string {
	return "reddit"
}

// redditListing represents a Reddit API listing response.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Title      string  `json:"title"`
				Selftext   string  `json:"selftext"`
				URL        string  `json:"url"`
				Permalink  string  `json:"permalink"`
				Score      int     `json:"score"`
				Subreddit  string  `json:"subreddit"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type scoredHeadline struct {
	Headline
	score int
}

// Fetch retrieves hot posts from the configured subreddits, highest score first.
func (r *RedditSource) Fetch(ctx context.Context) ([]Headline, error) {
	token, err := r.ensureAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	var all []scoredHeadline
	for _, subreddit := range r.subreddits {
		posts, err := r.fetchSubredditHot(ctx, token, subreddit)
		if err != nil {
			slog.Warn("failed to fetch subreddit",
				"subreddit", subreddit,
				"error", err,
			)
			continue
		}
		all = append(all, posts...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})
	if len(all) > r.maxPosts {
		all = all[:r.maxPosts]
	}

	headlines := make([]Headline, len(all))
	for i, p := range all {
		headlines[i] = p.Headline
	}

	slog.Debug("fetched Reddit headlines", "count", len(headlines))
	return headlines, nil
}

func (r *RedditSource) ensureAccessToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.accessToken != "" && time.Now().Before(r.tokenExpiry) {
		return r.accessToken, nil
	}

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.authURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}

	req.SetBasicAuth(r.clientID, r.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Reddit auth failed (status %d): %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}

	r.accessToken = tokenResp.AccessToken
	r.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)

	slog.Debug("obtained Reddit access token", "expires_in", tokenResp.ExpiresIn)
	return r.accessToken, nil
}

func (r *RedditSource) fetchSubredditHot(ctx context.Context, token, subreddit string) ([]scoredHeadline, error) {
	reqURL := fmt.Sprintf("%s/r/%s/hot?limit=%d", r.apiURL, subreddit, redditPerSubreddit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Reddit API error (status %d): %s", resp.StatusCode, string(body))
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, err
	}

	posts := make([]scoredHeadline, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data

		postURL := post.URL
		if postURL == "" && strings.HasPrefix(post.Permalink, "/") {
			postURL = "https://www.reddit.com" + post.Permalink
		}

		var published time.Time
		if post.CreatedUTC > 0 {
			published = time.Unix(int64(post.CreatedUTC), 0).UTC()
		}

		posts = append(posts, scoredHeadline{
			Headline: Headline{
				Source:      r.Name(),
				ExternalID:  post.ID,
				Title:       post.Title,
				URL:         postURL,
				Description: truncate(post.Selftext, 500),
				PublishedAt: published,
			},
			score: post.Score,
		})
	}

	return posts, nil
}
