package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abdulachik/novelpair/internal/config"
	"github.com/abdulachik/novelpair/internal/pairer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "novelpair.db"),
		HNMaxStories: 10,
		MaxHeadlines: 100,
		PairWindow:   time.Hour,
		PairSeed:     7,
	}
}

func TestNew(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Pairer)
	assert.NotNil(t, a.Aggregator)
	assert.True(t, a.StopWords.Contains("the"))

	headlines, err := a.RecentHeadlines(context.Background())
	require.NoError(t, err)
	assert.Empty(t, headlines)
}

func TestSources(t *testing.T) {
	t.Run("hacker news only", func(t *testing.T) {
		sources := Sources(&config.Config{})
		require.Len(t, sources, 1)
		assert.Equal(t, "hackernews", sources[0].Name())
	})

	t.Run("all sources", func(t *testing.T) {
		cfg := &config.Config{
			NewsAPIKey:         "key",
			RedditClientID:     "id",
			RedditClientSecret: "secret",
			RSSFeeds:           []string{"https://feeds.example.com/world.xml"},
		}

		var names []string
		for _, s := range Sources(cfg) {
			names = append(names, s.Name())
		}
		assert.Equal(t, []string{"newsapi", "hackernews", "reddit", "feeds.example.com"}, names)
	})
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	pairs := []pairer.Pair{
		{TopicA: "A", TopicB: "B", Distance: 0.97},
		{TopicA: "C", TopicB: "D", Distance: 0.41},
	}

	run, err := RecordRun(ctx, a.Store, pairs, 12, 7)
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, int64(12), run.HeadlineCount)
	assert.Equal(t, int64(2), run.PairCount)

	latest, err := a.Store.GetLatestPairRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, run.ID, latest.ID)

	stored, err := a.Store.ListPairsByRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, int64(1), stored[0].Rank)
	assert.Equal(t, "A", stored[0].TopicA)
	assert.Equal(t, 0.41, stored[1].Distance)
}
