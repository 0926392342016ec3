// Package textproc holds the text handling shared by pairing and keyword
// extraction: headline normalization, the stop-word set and word tokenization.
package textproc

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Normalize removes every character that is not an ASCII letter, digit or
// whitespace and lowercases the rest. Anything that is not a string (or a
// non-nil *string) normalizes to "".
func Normalize(v any) string {
	var text string
	switch t := v.(type) {
	case string:
		text = t
	case *string:
		if t == nil {
			return ""
		}
		text = *t
	default:
		return ""
	}

	return strings.ToLower(nonAlphanumeric.ReplaceAllString(text, ""))
}

// NormalizeAll normalizes each text, preserving positions.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}
