package pairer

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/abdulachik/novelpair/internal/headline"
)

// Pair is a candidate pairing of two headlines.
type Pair struct {
	TopicA   string  `json:"topic_a"`
	TopicB   string  `json:"topic_b"`
	Distance float64 `json:"distance"`
	IndexA   int     `json:"index_a"`
	IndexB   int     `json:"index_b"`
}

// NewRand returns a PCG generator seeded with seed, or a randomly seeded one when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Sampler draws random headline pairs and ranks them by distance.
// It is not safe for concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler drawing from rng. A nil rng gets a randomly seeded one.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Sampler{rng: rng}
}

// Sample makes n independent draws of two distinct indices, records each
// pair's rounded distance and returns the pairs sorted most distant first.
// Equal distances keep their draw order. The same pair may be drawn more than once.
func (s *Sampler) Sample(headlines []headline.Headline, distances DistanceMatrix, n int) ([]Pair, error) {
	if len(headlines) < 2 {
		return nil, ErrInsufficientData
	}
	if n < 0 {
		return nil, ErrInvalidPairCount
	}
	if distances.Size() != len(headlines) {
		return nil, fmt.Errorf("distance matrix has %d rows for %d headlines", distances.Size(), len(headlines))
	}

	pairs := make([]Pair, 0, n)
	for range n {
		i, j := s.draw(len(headlines))
		pairs = append(pairs, Pair{
			TopicA:   headlines[i].Title,
			TopicB:   headlines[j].Title,
			Distance: Round(distances[i][j]),
			IndexA:   i,
			IndexB:   j,
		})
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Distance > pairs[b].Distance
	})

	return pairs, nil
}

// draw picks two distinct indices in [0, size) uniformly, order significant.
func (s *Sampler) draw(size int) (int, int) {
	i := s.rng.IntN(size)
	j := s.rng.IntN(size - 1)
	if j >= i {
		j++
	}
	return i, j
}

// Round rounds a distance to two decimals.
func Round(d float64) float64 {
	return math.Round(d*100) / 100
}
