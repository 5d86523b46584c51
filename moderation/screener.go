// Package moderation screens user utterances for abusive terms before
// they reach the dialogue policy or the turn log. Matching is done
// with an Aho-Corasick automaton over a normalized view of the text,
// so spaced or punctuated variants of a blocked term still match.
package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Screener struct {
	matcher  *goahocorasick.Machine
	maskChar rune
	log      *slog.Logger
}

// Result of screening one utterance.
type Result struct {
	// Censored is the original text with matched spans masked.
	// Equal to the input when nothing matched.
	Censored string
	// Flagged is true when at least one blocked term was found.
	Flagged bool
	// Terms lists the normalized blocked terms that matched.
	Terms []string
}

// NewScreener builds the automaton from the blocklist. Terms are
// normalized the same way as the input so matching is symmetric.
func NewScreener(blocklist []string, maskChar rune, log *slog.Logger) (*Screener, error) {
	patterns := make([][]rune, 0, len(blocklist))
	for _, term := range blocklist {
		if norm := normalize([]rune(term)); len(norm) > 0 {
			patterns = append(patterns, norm)
		}
	}
	// An empty blocklist disables screening entirely.
	if len(patterns) == 0 {
		return &Screener{maskChar: maskChar, log: log}, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Screener{matcher: m, maskChar: maskChar, log: log}, nil
}

// Screen checks the utterance against the blocklist and returns the
// censored form together with the matched terms. The original rune
// positions are tracked through normalization so masking preserves
// the surrounding spacing and punctuation.
func (s *Screener) Screen(text string) Result {
	if s.matcher == nil {
		return Result{Censored: text}
	}
	orig := []rune(text)
	norm := make([]rune, 0, len(orig))
	origIdx := make([]int, 0, len(orig))
	for i, r := range orig {
		clean := unicode.ToLower(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, clean)
		origIdx = append(origIdx, i)
	}
	if len(norm) == 0 {
		return Result{Censored: text}
	}

	spans := s.matcher.MultiPatternSearch(norm, false)
	if len(spans) == 0 {
		return Result{Censored: text}
	}

	var terms []string
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			orig[i] = s.maskChar
		}
		terms = append(terms, string(span.Word))
	}
	s.log.Debug("Utterance flagged by screener", "terms", len(terms))
	return Result{Censored: string(orig), Flagged: len(terms) > 0, Terms: terms}
}

func normalize(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if isNoise(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return out
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
