package pairer

import (
	"log/slog"

	"github.com/abdulachik/novelpair/internal/textproc"
)

// DistanceMatrix is a square, symmetric matrix of pairwise headline distances
// indexed by collection position. The diagonal is zero.
type DistanceMatrix [][]float64

// Size returns the number of rows.
func (d DistanceMatrix) Size() int {
	return len(d)
}

// MatrixBuilder turns normalized texts into a distance matrix.
type MatrixBuilder struct {
	vectorizer *Vectorizer
}

// NewMatrixBuilder creates a builder that excludes the given stop words.
func NewMatrixBuilder(stopWords textproc.StopWords) *MatrixBuilder {
	return &MatrixBuilder{vectorizer: NewVectorizer(stopWords)}
}

// Build vectorizes texts and returns distance = 1 - cosine similarity for every pair.
// It fails with ErrDegenerateVocabulary when no text contributes a vocabulary term.
func (b *MatrixBuilder) Build(texts []string) (DistanceMatrix, error) {
	tm, err := b.vectorizer.FitTransform(texts)
	if err != nil {
		return nil, err
	}

	slog.Debug("vectorized headlines",
		"texts", len(texts),
		"vocabulary", len(tm.Vocabulary),
	)

	n := len(texts)
	backing := make([]float64, n*n)
	dm := make(DistanceMatrix, n)
	for i := range dm {
		dm[i] = backing[i*n : (i+1)*n]
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := clamp(CosineSimilarity(tm.Rows[i], tm.Rows[j]), 0, 1)
			d := 1 - sim
			dm[i][j] = d
			dm[j][i] = d
		}
	}

	return dm, nil
}

// BuildDistanceMatrix is a convenience wrapper around MatrixBuilder.Build.
func BuildDistanceMatrix(texts []string, stopWords textproc.StopWords) (DistanceMatrix, error) {
	return NewMatrixBuilder(stopWords).Build(texts)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
