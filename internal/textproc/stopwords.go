package textproc

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
)

// StopWords is a set of terms excluded from the vocabulary.
// The zero value is an empty set.
type StopWords map[string]struct{}

// NewStopWords builds a set from the given words, lowercased.
func NewStopWords(words ...string) StopWords {
	sw := make(StopWords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			sw[w] = struct{}{}
		}
	}
	return sw
}

// EnglishStopWords returns bleve's Snowball English stop list.
func EnglishStopWords() (StopWords, error) {
	tm := analysis.NewTokenMap()
	if err := tm.LoadBytes(en.EnglishStopWords); err != nil {
		return nil, fmt.Errorf("load english stop words: %w", err)
	}

	sw := make(StopWords, len(tm))
	for word := range tm {
		sw[strings.ToLower(word)] = struct{}{}
	}
	return sw, nil
}

// Contains reports whether word is a stop word.
func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Len returns the number of stop words.
func (s StopWords) Len() int {
	return len(s)
}
