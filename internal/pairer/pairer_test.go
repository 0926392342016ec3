package pairer

import (
	"context"
	"strings"
	"testing"

	"github.com/abdulachik/novelpair/internal/textproc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New(Config{})

	assert.NotNil(t, p)
	assert.Equal(t, defaultMaxHeadlines, p.maxHeadlines)
	assert.NotNil(t, p.sampler)
}

func TestNew_CustomConfig(t *testing.T) {
	p := New(Config{MaxHeadlines: 10, Rand: NewRand(5)})
	assert.Equal(t, 10, p.maxHeadlines)
}

func TestPairer_Pair(t *testing.T) {
	ctx := context.Background()
	stop := englishStopWords(t)

	hs := makeHeadlines(
		"Stock market rallies today",
		"Stock market rallies today",
		"Alien life discovered on Mars",
		"Storm batters the east coast",
		"Chipmaker unveils faster processor",
	)

	t.Run("ranks pairs", func(t *testing.T) {
		p := New(Config{StopWords: stop, Rand: NewRand(9)})
		pairs, err := p.Pair(ctx, hs, DefaultPairs)
		require.NoError(t, err)

		require.Len(t, pairs, DefaultPairs)
		for i, pair := range pairs {
			assert.NotEqual(t, pair.IndexA, pair.IndexB)
			assert.GreaterOrEqual(t, pair.Distance, 0.0)
			assert.LessOrEqual(t, pair.Distance, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, pairs[i-1].Distance, pair.Distance)
			}
		}
	})

	t.Run("duplicate headlines are zero distance", func(t *testing.T) {
		p := New(Config{StopWords: stop, Rand: NewRand(1)})
		pairs, err := p.Pair(ctx, hs[:2], 3)
		require.NoError(t, err)

		for _, pair := range pairs {
			assert.Equal(t, 0.0, pair.Distance)
		}
	})

	t.Run("reproducible with seed", func(t *testing.T) {
		p1, err := New(Config{StopWords: stop, Rand: NewRand(77)}).Pair(ctx, hs, 8)
		require.NoError(t, err)
		p2, err := New(Config{StopWords: stop, Rand: NewRand(77)}).Pair(ctx, hs, 8)
		require.NoError(t, err)

		assert.Equal(t, p1, p2)
	})

	t.Run("zero pairs", func(t *testing.T) {
		pairs, err := New(Config{StopWords: stop}).Pair(ctx, hs, 0)
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})

	t.Run("single headline", func(t *testing.T) {
		_, err := New(Config{StopWords: stop}).Pair(ctx, hs[:1], 5)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("empty collection", func(t *testing.T) {
		_, err := New(Config{StopWords: stop}).Pair(ctx, nil, 5)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("stop words only", func(t *testing.T) {
		_, err := New(Config{StopWords: stop}).Pair(ctx, makeHeadlines("the and or", "a an the"), 5)
		assert.ErrorIs(t, err, ErrDegenerateVocabulary)
	})

	t.Run("collection too large", func(t *testing.T) {
		_, err := New(Config{StopWords: stop, MaxHeadlines: 3}).Pair(ctx, hs, 5)
		assert.ErrorIs(t, err, ErrCollectionTooLarge)
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := New(Config{StopWords: stop}).Pair(ctx, hs, -2)
		assert.ErrorIs(t, err, ErrInvalidPairCount)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := New(Config{StopWords: stop}).Pair(cctx, hs, 5)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("headline with empty title keeps its slot", func(t *testing.T) {
		withEmpty := makeHeadlines("Mars rover lands", "", "Election results announced")
		dm, err := New(Config{StopWords: stop}).Distances(ctx, withEmpty)
		require.NoError(t, err)

		assert.Equal(t, 3, dm.Size())
		assert.Equal(t, 1.0, dm[0][1])
	})
}

func TestPairer_PairSeeded(t *testing.T) {
	ctx := context.Background()
	hs := makeHeadlines(
		"Volcano erupts in Iceland",
		"Central bank raises rates",
		"New species of frog found",
		"Football club wins league",
		"Solar panels get cheaper",
	)
	p := New(Config{StopWords: englishStopWords(t)})

	first, err := p.PairSeeded(ctx, hs, 6, 1234)
	require.NoError(t, err)
	second, err := p.PairSeeded(ctx, hs, 6, 1234)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = p.PairSeeded(ctx, hs[:1], 6, 1234)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = p.PairSeeded(ctx, hs, -1, 1234)
	assert.ErrorIs(t, err, ErrInvalidPairCount)
}

func TestPairer_MinimalVocabulary(t *testing.T) {
	p := New(Config{StopWords: textproc.NewStopWords("news"), Rand: NewRand(2)})

	_, err := p.Pair(context.Background(), makeHeadlines("News", "news!"), 1)
	assert.ErrorIs(t, err, ErrDegenerateVocabulary)
}

func TestRender(t *testing.T) {
	out := Render(Pair{TopicA: "Stocks up", TopicB: "Life on Mars", Distance: 0.9})

	assert.True(t, strings.HasPrefix(out, "🌀 [0.90]"))
	assert.Contains(t, out, "Stocks up ↔ Life on Mars")
}
