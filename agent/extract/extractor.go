// Package extract pulls booking fields out of free-form chat messages.
// Every extractor is pure: regexes and lookup tables only, no I/O. The
// orchestrator in this package runs them in priority order over a working
// copy of the message, removing consumed spans so later extractors never
// re-match the same text.
package extract

import (
	"strings"
	"unicode"

	"glambook/models"
)

// Extractor is one per-field extraction strategy.
type Extractor interface {
	// Field returns the canonical field key this extractor fills.
	Field() string
	// Extract scans the message and returns the best candidate, if any.
	// history carries recent user messages, oldest first, for extractors
	// that fall back to earlier turns.
	Extract(message string, history []string) (models.Candidate, bool)
}

// cleanMessage normalizes whitespace and strips zero-width characters.
func cleanMessage(msg string) string {
	msg = strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, msg)
	return strings.Join(strings.Fields(msg), " ")
}

// titleCase capitalizes each word, lowering the rest.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// digitsOnly strips everything but 0-9.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// removeWords deletes every word of span from msg, word by word, so that
// partially-overlapping text survives. Comparison is case-insensitive and
// ignores trailing punctuation on message words.
func removeWords(msg, span string) string {
	if span == "" {
		return msg
	}
	consumed := make(map[string]bool)
	for _, w := range strings.Fields(span) {
		consumed[strings.ToLower(strings.Trim(w, ",.;:!?"))] = true
	}
	var kept []string
	for _, w := range strings.Fields(msg) {
		if consumed[strings.ToLower(strings.Trim(w, ",.;:!?"))] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
