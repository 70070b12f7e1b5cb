// Package engine drives the booking conversation: a state machine over
// conversation stages, a message-intent detector, the detail-collection
// pipeline, and the prompt catalog.
package engine

import (
	"regexp"
	"strings"
	"unicode"
)

// Message intent categories, in tie-break priority order: when two
// categories score equally, the earlier one wins.
const (
	IntentBooking     = "booking"
	IntentInfo        = "info"
	IntentCompletion  = "completion"
	IntentExit        = "exit"
	IntentRestart     = "restart"
	IntentQuestion    = "question"
	IntentAffirmative = "affirmative"
	IntentNegative    = "negative"
	IntentUnknown     = "unknown"
)

var intentOrder = []string{
	IntentBooking, IntentInfo, IntentCompletion, IntentExit,
	IntentRestart, IntentQuestion, IntentAffirmative, IntentNegative,
}

var intentKeywords = map[string][]string{
	IntentBooking: {
		"book", "booking", "appointment", "schedule", "reserve",
		"makeup", "bridal", "mehendi", "henna", "party makeup",
		"i want to book", "need a booking",
	},
	IntentInfo: {
		"price", "prices", "cost", "how much", "tell me about", "info",
		"information", "details about", "packages", "services", "rate",
		"charges", "what do you offer",
	},
	IntentCompletion: {
		"done", "that's all", "thats all", "finish", "complete",
		"nothing else", "that is all", "confirm",
	},
	IntentExit: {
		"bye", "goodbye", "exit", "quit", "stop", "cancel", "leave",
		"not interested", "nevermind", "never mind",
	},
	IntentRestart: {
		"restart", "start over", "start again", "reset", "new booking",
		"from the beginning",
	},
	IntentQuestion: {
		"what", "when", "where", "who", "why", "how", "can you",
		"could you", "do you", "is there", "are there",
	},
	IntentAffirmative: {
		"yes", "yeah", "yep", "sure", "ok", "okay", "correct", "right",
		"sounds good", "perfect", "haan", "ho", "theek",
	},
	IntentNegative: {
		"no", "nope", "nah", "wrong", "incorrect", "not right",
		"nahi", "hoina",
	},
}

var frustrationKeywords = []string{
	"frustrated", "annoying", "annoyed", "stupid", "useless", "ridiculous",
	"terrible", "worst", "angry", "fed up", "waste of time", "not working",
}

var repeatedPunct = regexp.MustCompile(`[!?]{2,}`)

// DetectedIntent is the classification of one user message.
type DetectedIntent struct {
	Category   string
	Score      float64
	Frustrated bool
}

// DetectIntent scores the message against every category bank and returns
// the argmax. Ties resolve to the earliest category in intentOrder.
func DetectIntent(message string) DetectedIntent {
	msgLower := strings.ToLower(strings.TrimSpace(message))
	if msgLower == "" {
		return DetectedIntent{Category: IntentUnknown}
	}

	best := DetectedIntent{Category: IntentUnknown}
	for _, cat := range intentOrder {
		score := scoreCategory(msgLower, intentKeywords[cat])
		if cat == IntentQuestion && strings.HasSuffix(msgLower, "?") {
			score += 0.3
		}
		if score > 1 {
			score = 1
		}
		if score > best.Score {
			best = DetectedIntent{Category: cat, Score: score}
		}
	}
	best.Frustrated = IsFrustrated(message)
	return best
}

func scoreCategory(msgLower string, keywords []string) float64 {
	var score float64
	for _, kw := range keywords {
		if !containsWord(msgLower, kw) {
			continue
		}
		if strings.Contains(kw, " ") {
			score += 0.5 // phrases are stronger signals
		} else {
			score += 0.35
		}
		if msgLower == kw {
			score += 0.5
		}
	}
	return score
}

// containsWord is a word-boundary contains for single words, plain
// substring match for phrases.
func containsWord(msgLower, kw string) bool {
	if strings.Contains(kw, " ") {
		return strings.Contains(msgLower, kw)
	}
	idx := 0
	for {
		i := strings.Index(msgLower[idx:], kw)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordRune(rune(msgLower[i-1]))
		afterIdx := i + len(kw)
		after := afterIdx >= len(msgLower) || !isWordRune(rune(msgLower[afterIdx]))
		if before && after {
			return true
		}
		idx = i + len(kw)
		if idx >= len(msgLower) {
			return false
		}
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsFrustrated spots anger: frustration keywords, doubled punctuation,
// or two or more shouted words.
func IsFrustrated(message string) bool {
	msgLower := strings.ToLower(message)
	for _, kw := range frustrationKeywords {
		if strings.Contains(msgLower, kw) {
			return true
		}
	}
	if repeatedPunct.MatchString(message) {
		return true
	}
	caps := 0
	for _, w := range strings.Fields(message) {
		if len(w) > 2 && w == strings.ToUpper(w) && w != strings.ToLower(w) {
			caps++
		}
	}
	return caps >= 2
}

// IsClearQuestion is a strict question check used to let users escape the
// collection flow: a question mark (ignoring one-to-two token replies
// like "15 march?") or an interrogative opener.
func IsClearQuestion(message string) bool {
	trimmed := strings.TrimSpace(message)
	msgLower := strings.ToLower(trimmed)

	if strings.Contains(trimmed, "?") {
		words := strings.Fields(strings.ReplaceAll(trimmed, "?", ""))
		if len(words) == 1 {
			return false
		}
		if len(words) == 2 && (allDigits(words[0]) || allDigits(words[1])) {
			return false
		}
		return true
	}

	starters := []string{
		"what is", "what are", "how to", "how much", "how many", "can you",
		"could you", "would you", "do you", "are you", "is there",
		"are there", "when is", "where is", "who is", "why is",
	}
	for _, s := range starters {
		if strings.HasPrefix(msgLower, s) {
			return true
		}
	}
	return false
}
