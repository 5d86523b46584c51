// Package nlp provides the text normalization and feature
// vectorization steps of the classification pipeline.
// Both are deterministic: the same input always yields the
// same tokens and the same feature vector.
package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/blevesearch/go-porterstemmer"
)

var urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)

// Normalize turns a raw utterance into an ordered sequence of
// canonical tokens: lowercase, URLs and punctuation removed,
// stopwords dropped, remaining words Porter-stemmed.
// Empty or whitespace-only input returns an empty slice.
func Normalize(text string) []string {
	text = urlPattern.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are removed inside words ("don't" -> "dont")
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 || IsStopword(f) {
			continue
		}
		tokens = append(tokens, porterstemmer.StemString(f))
	}
	return tokens
}
