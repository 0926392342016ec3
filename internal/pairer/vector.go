package pairer

import (
	"math"
	"sort"

	"github.com/abdulachik/novelpair/internal/textproc"
)

// SparseVector is a TF-IDF weighted row keyed by vocabulary index.
type SparseVector map[int]float64

// TermMatrix is the TF-IDF representation of a batch of texts over a shared vocabulary.
type TermMatrix struct {
	Vocabulary []string
	Rows       []SparseVector
}

// Vectorizer builds TF-IDF vectors, excluding stop words from the vocabulary.
type Vectorizer struct {
	stopWords textproc.StopWords
}

// NewVectorizer creates a vectorizer over the given stop-word set.
func NewVectorizer(stopWords textproc.StopWords) *Vectorizer {
	return &Vectorizer{stopWords: stopWords}
}

// FitTransform learns the vocabulary of texts and returns their L2-normalized
// TF-IDF vectors. Weights are raw term counts scaled by the smoothed inverse
// document frequency ln((1+n)/(1+df)) + 1.
func (v *Vectorizer) FitTransform(texts []string) (*TermMatrix, error) {
	counts := make([]map[string]int, len(texts))
	docFreq := make(map[string]int)

	for i, text := range texts {
		c := make(map[string]int)
		for _, term := range textproc.Tokenize(text, v.stopWords) {
			c[term]++
		}
		for term := range c {
			docFreq[term]++
		}
		counts[i] = c
	}

	if len(docFreq) == 0 {
		return nil, ErrDegenerateVocabulary
	}

	vocab := make([]string, 0, len(docFreq))
	for term := range docFreq {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(texts))
	for i, term := range vocab {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	rows := make([]SparseVector, len(texts))
	for i, c := range counts {
		row := make(SparseVector, len(c))
		for term, count := range c {
			j := index[term]
			row[j] = float64(count) * idf[j]
		}
		rows[i] = normalize(row)
	}

	return &TermMatrix{
		Vocabulary: vocab,
		Rows:       rows,
	}, nil
}

// normalize scales a vector to unit length in place. Zero vectors are returned unchanged.
func normalize(v SparseVector) SparseVector {
	var norm float64
	for _, w := range v {
		norm += w * w
	}
	if norm == 0 {
		return v
	}

	norm = math.Sqrt(norm)
	for j, w := range v {
		v[j] = w / norm
	}
	return v
}

// CosineSimilarity computes the cosine similarity between two sparse vectors.
func CosineSimilarity(a, b SparseVector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	var dot, normA, normB float64
	for j, wa := range a {
		normA += wa * wa
		if wb, ok := b[j]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
