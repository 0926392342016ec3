// Package keywords pulls short keyword phrases out of free text.
//
// It is a standalone utility for inspecting headlines and plays no part in
// pairing.
package keywords

import (
	"strings"

	"github.com/abdulachik/novelpair/internal/textproc"
)

// DefaultTopN is the number of phrases returned when the caller passes zero.
const DefaultTopN = 5

// Extract returns up to topN keyword phrases from text. A phrase is a maximal
// run of consecutive vocabulary words; stop words and single characters end a
// run. Phrases are returned once each, in the order they first appear.
func Extract(text string, stop textproc.StopWords, topN int) []string {
	if topN <= 0 {
		topN = DefaultTopN
	}

	var phrases []string
	seen := make(map[string]struct{})
	var run []string

	flush := func() {
		if len(run) == 0 {
			return
		}
		phrase := strings.Join(run, " ")
		run = run[:0]
		if _, ok := seen[phrase]; ok {
			return
		}
		seen[phrase] = struct{}{}
		phrases = append(phrases, phrase)
	}

	for _, word := range textproc.Words(textproc.Normalize(text)) {
		if textproc.IsTerm(word, stop) {
			run = append(run, word)
			continue
		}
		flush()
	}
	flush()

	if len(phrases) > topN {
		phrases = phrases[:topN]
	}
	return phrases
}
