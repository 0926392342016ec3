package textproc

import (
	"strings"
	"unicode/utf8"

	unicodetok "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// minTokenLength drops single-character tokens such as stray initials.
const minTokenLength = 2

var wordTokenizer = unicodetok.NewUnicodeTokenizer()

// Words splits text into lowercase word tokens in order of appearance.
func Words(text string) []string {
	stream := wordTokenizer.Tokenize([]byte(text))
	words := make([]string, 0, len(stream))
	for _, tok := range stream {
		words = append(words, strings.ToLower(string(tok.Term)))
	}
	return words
}

// IsTerm reports whether a word is eligible for the vocabulary.
func IsTerm(word string, stop StopWords) bool {
	return utf8.RuneCountInString(word) >= minTokenLength && !stop.Contains(word)
}

// Tokenize returns the vocabulary terms of text: words of at least two
// characters that are not stop words.
func Tokenize(text string, stop StopWords) []string {
	words := Words(text)
	terms := words[:0]
	for _, w := range words {
		if IsTerm(w, stop) {
			terms = append(terms, w)
		}
	}
	return terms
}
