package pairer

import "errors"

var (
	// ErrInsufficientData is returned when fewer than two headlines are available.
	ErrInsufficientData = errors.New("insufficient data: at least 2 headlines are required")

	// ErrDegenerateVocabulary is returned when every headline is empty or made
	// only of stop words, leaving nothing to vectorize.
	ErrDegenerateVocabulary = errors.New("degenerate vocabulary: headlines contain only stop words")

	// ErrCollectionTooLarge is returned when a collection exceeds the configured
	// size limit before the quadratic similarity step.
	ErrCollectionTooLarge = errors.New("headline collection too large")

	// ErrInvalidPairCount is returned for a negative pair count.
	ErrInvalidPairCount = errors.New("pair count must not be negative")
)
