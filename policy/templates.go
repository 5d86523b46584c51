package policy

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// Canned replies for the paths that never go through the intent
// templates. Wording follows the original support scripts.
var fallbackReplies = []string{
	"I'm not quite sure I understand. Could you please rephrase your question?",
	"I didn't quite catch that. Can you try asking in a different way?",
	"I'm still learning! Could you provide more details or ask differently?",
	"I want to make sure I help you correctly. Could you clarify your question?",
}

var humanAgentReplies = []string{
	"Let me connect you with a human support agent. Please hold on.",
	"I'll transfer you to one of our support specialists right away.",
}

const (
	abuseReply       = "I understand you're frustrated. Let me connect you with a human agent who can help."
	nonEnglishReply  = "I'm sorry, I can only assist in English at the moment. Could you rephrase your question in English?"
	serviceDownReply = "I'm having trouble reaching that service right now. Please try again in a moment."
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// fill substitutes {placeholder} occurrences with the given values.
// Unknown placeholders are left untouched; pickFillable guarantees
// that does not happen for corpus templates.
func fill(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := strings.Trim(match, "{}")
		if v, ok := values[key]; ok {
			return v
		}
		return match
	})
}

// pickFillable selects a random template whose placeholders are all
// resolvable with the given values. Falls back to the first
// placeholder-free candidate, then to a generic reply.
func pickFillable(candidates []string, values map[string]string) (string, bool) {
	var fillable []string
	for _, c := range candidates {
		if resolvable(c, values) {
			fillable = append(fillable, c)
		}
	}
	if len(fillable) == 0 {
		return "", false
	}
	return fill(fillable[rand.IntN(len(fillable))], values), true
}

func resolvable(template string, values map[string]string) bool {
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := values[m[1]]; !ok {
			return false
		}
	}
	return true
}

func pick(candidates []string) string {
	return candidates[rand.IntN(len(candidates))]
}
