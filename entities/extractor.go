// Package entities extracts structured values from raw utterances
// with a fixed, ordered set of regex matchers.
package entities

import (
	"regexp"
	"strings"

	"support-bot/domain"
)

// matcher binds an entity type to its pattern. Order matters and is
// stable across calls: first match per type wins.
type matcher struct {
	entity  domain.EntityType
	pattern *regexp.Regexp
	// uppercase applies to order numbers so "ord-2024-001" and
	// "ORD-2024-001" extract identically.
	uppercase bool
}

var matchers = []matcher{
	// Canonical form ORD-2024-001, plus the loose ORD12345 / ORDER_987 forms.
	{domain.EntityOrderNumber, regexp.MustCompile(`(?i)\bORD-\d{4}-\d{3}\b`), true},
	{domain.EntityOrderNumber, regexp.MustCompile(`(?i)\b(?:ORD|ORDER)[-_]?\d+\b`), true},
	{domain.EntityEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), false},
	{domain.EntityPhone, regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`), false},
}

// Extract scans the raw text and returns the recognized entities.
// Types with no match are omitted from the result. Pure function.
func Extract(text string) domain.Entities {
	found := domain.Entities{}
	for _, m := range matchers {
		if _, ok := found[m.entity]; ok {
			continue
		}
		if match := m.pattern.FindString(text); match != "" {
			if m.uppercase {
				match = strings.ToUpper(match)
			}
			found[m.entity] = match
		}
	}
	return found
}
