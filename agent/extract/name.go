package extract

import (
	"regexp"
	"strings"

	"glambook/models"
)

var nameTemplates = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy\s+name\s+is\s+([a-zA-Z]+(?:\s+[a-zA-Z]+){0,3})`),
	regexp.MustCompile(`(?i)\bname\s*[:\-]\s*([a-zA-Z]+(?:\s+[a-zA-Z]+){0,3})`),
	regexp.MustCompile(`(?i)\bname\s+is\s+([a-zA-Z]+(?:\s+[a-zA-Z]+){0,3})`),
	regexp.MustCompile(`(?i)\bi\s+am\s+([a-zA-Z]+(?:\s+[a-zA-Z]+){0,2})\b`),
	regexp.MustCompile(`(?i)\bi'?m\s+([a-zA-Z]+(?:\s+[a-zA-Z]+){0,2})\b`),
	regexp.MustCompile(`(?i)\bthis\s+is\s+([a-zA-Z]+(?:\s+[a-zA-Z]+){0,2})\b`),
	regexp.MustCompile(`(?i)\bcall\s+me\s+([a-zA-Z]+(?:\s+[a-zA-Z]+){0,2})\b`),
}

// capitalizedRun matches one to three consecutive capitalized words.
var capitalizedRun = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})\b`)

// nameStopwords are words that can never be part of a person's name in
// this domain; they cut template captures short and veto heuristic runs.
var nameStopwords = map[string]bool{
	"booking": true, "book": true, "makeup": true, "bridal": true,
	"party": true, "henna": true, "mehendi": true, "engagement": true,
	"email": true, "phone": true, "number": true, "address": true,
	"pincode": true, "pin": true, "date": true, "country": true,
	"name": true, "package": true, "service": true, "interested": true,
	"looking": true, "want": true, "need": true, "from": true,
	"india": true, "nepal": true, "pakistan": true, "bangladesh": true,
	"dubai": true, "and": true, "the": true, "for": true, "with": true,
	"not": true, "here": true, "there": true, "yes": true, "no": true,
	"ok": true, "okay": true, "sure": true, "hello": true, "hi": true,
	"thanks": true, "this": true, "that": true, "is": true, "are": true,
	"was": true, "you": true, "what": true, "how": true, "why": true,
	"when": true, "where": true, "useless": true, "stupid": true,
	"tomorrow": true, "today": true, "my": true, "your": true,
	"our": true, "please": true, "change": true,
}

// NameExtractor finds the customer's name.
type NameExtractor struct{}

func (NameExtractor) Field() string { return models.FieldName }

func (e NameExtractor) Extract(message string, history []string) (models.Candidate, bool) {
	message = cleanMessage(message)

	for _, re := range nameTemplates {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		if name, ok := trimToName(m[1]); ok {
			return models.Candidate{
				Field:      models.FieldName,
				Value:      titleCase(name),
				Confidence: models.ConfidenceVeryHigh,
				Method:     "template",
				Raw:        m[0],
			}, true
		}
	}

	// Capitalized-word heuristic on the raw message.
	for _, m := range capitalizedRun.FindAllString(message, -1) {
		if name, ok := trimToName(m); ok {
			return models.Candidate{
				Field:      models.FieldName,
				Value:      titleCase(name),
				Confidence: models.ConfidenceMedium,
				Method:     "capitalized",
				Raw:        m,
			}, true
		}
	}

	// A short bare reply ("rupesh", "Priya Sharma") is taken as a name when
	// it contains nothing but plausible name words.
	words := strings.Fields(message)
	if len(words) >= 1 && len(words) <= 3 {
		if name, ok := trimToName(message); ok && len(strings.Fields(name)) == len(words) {
			return models.Candidate{
				Field:      models.FieldName,
				Value:      titleCase(name),
				Confidence: models.ConfidenceLow,
				Method:     "bare_reply",
				Raw:        message,
			}, true
		}
	}

	return models.Candidate{}, false
}

// trimToName keeps leading words that could belong to a name, stopping at
// the first stopword, digit or symbol. At least one word must survive.
func trimToName(s string) (string, bool) {
	var kept []string
	for _, w := range strings.Fields(s) {
		clean := strings.Trim(w, ",.;:!?")
		lower := strings.ToLower(clean)
		if clean == "" || nameStopwords[lower] || !alphaOnly(clean) || len(clean) < 2 {
			break
		}
		kept = append(kept, clean)
		if len(kept) == 4 {
			break
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, " "), true
}

func alphaOnly(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
