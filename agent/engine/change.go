package engine

import (
	"regexp"
	"strconv"
	"strings"

	"glambook/agent/extract"
	"glambook/models"
)

// changeRetryLimit is how many invalid replacement values we accept
// before abandoning the change.
const changeRetryLimit = 2

var changeKeyword = regexp.MustCompile(`(?i)\b(change|update|modify|correct|edit|replace)\b`)

// standaloneTo finds the word "to" that separates field mention from the
// replacement value in inline changes.
var standaloneTo = regexp.MustCompile(`(?i)\bto\b`)

// fieldMentionSpecial resolves multi-word mentions before single keywords,
// so "email address" never maps to address.
var fieldMentionSpecial = []struct {
	Phrase string
	Field  string
}{
	{"email address", models.FieldEmail},
	{"e-mail address", models.FieldEmail},
	{"email id", models.FieldEmail},
	{"mail id", models.FieldEmail},
	{"phone number", models.FieldPhone},
	{"mobile number", models.FieldPhone},
	{"contact number", models.FieldPhone},
	{"whatsapp number", models.FieldPhone},
	{"service country", models.FieldServiceCountry},
	{"postal code", models.FieldPincode},
	{"pin code", models.FieldPincode},
	{"zip code", models.FieldPincode},
	{"booking date", models.FieldDate},
}

// fieldMentionWords maps single keywords to fields, used after the
// special phrases.
var fieldMentionWords = map[string]string{
	"name": models.FieldName, "email": models.FieldEmail,
	"mail": models.FieldEmail, "gmail": models.FieldEmail,
	"phone": models.FieldPhone, "mobile": models.FieldPhone,
	"number": models.FieldPhone, "whatsapp": models.FieldPhone,
	"country": models.FieldServiceCountry,
	"date":    models.FieldDate, "day": models.FieldDate,
	"address": models.FieldAddress, "venue": models.FieldAddress,
	"location": models.FieldAddress,
	"pincode":  models.FieldPincode, "pin": models.FieldPincode,
	"zip": models.FieldPincode, "postal": models.FieldPincode,
	"service": models.FieldService, "package": models.FieldPackage,
}

// ChangeRequest is a parsed field-change command.
type ChangeRequest struct {
	Field       string
	InlineValue string // set for "change X to Y" forms, original casing
	WantsMenu   bool   // bare "change" with no recognizable field
}

// ParseChangeRequest decides whether the message asks to alter an
// already-collected value. Bulk re-entry (two or more commas, or several
// data fragments) is not a change request; it re-runs extraction instead.
func ParseChangeRequest(message string) (ChangeRequest, bool) {
	loc := changeKeyword.FindStringIndex(message)
	if loc == nil {
		return ChangeRequest{}, false
	}
	if extract.IsBulkInput(message) {
		return ChangeRequest{}, false
	}

	rest := message[loc[1]:]
	field, mentionEnd, found := resolveFieldMention(rest)
	if !found {
		// No field named: only a leading verb ("change my details") opens
		// the menu. A trailing "correct" in "yes, that's correct" is a
		// confirmation, not an edit request.
		if !changeVerbLeads(message[:loc[0]]) {
			return ChangeRequest{}, false
		}
		return ChangeRequest{WantsMenu: true}, true
	}

	// Inline value: the original-cased text after the first standalone
	// "to" following the field mention, taken verbatim.
	tail := rest[mentionEnd:]
	if toLoc := standaloneTo.FindStringIndex(tail); toLoc != nil {
		value := strings.Trim(tail[toLoc[1]:], " .")
		if value != "" {
			return ChangeRequest{Field: field, InlineValue: value}, true
		}
	}
	return ChangeRequest{Field: field}, true
}

// changeVerbLeads reports whether the text before the change verb is
// empty or a polite lead-in ("i want to change ...").
func changeVerbLeads(prefix string) bool {
	p := strings.Trim(strings.ToLower(strings.TrimSpace(prefix)), " ,.!")
	if p == "" {
		return true
	}
	for _, lead := range []string{
		"i want to", "i would like to", "i'd like to", "i need to",
		"please", "can you", "could you", "can i", "may i", "let me",
	} {
		if p == lead || strings.HasSuffix(p, lead) {
			return true
		}
	}
	return false
}

// resolveFieldMention maps a mention to a canonical field. Layering:
// special multi-word phrases, then canonical keys, then single keywords.
// It returns the byte offset just past the mention.
func resolveFieldMention(text string) (string, int, bool) {
	lower := strings.ToLower(text)

	for _, sp := range fieldMentionSpecial {
		if idx := strings.Index(lower, sp.Phrase); idx >= 0 {
			return sp.Field, idx + len(sp.Phrase), true
		}
	}
	for _, f := range models.RequiredFields {
		if idx := strings.Index(lower, f); idx >= 0 {
			return f, idx + len(f), true
		}
	}

	offset := 0
	for _, w := range strings.Fields(lower) {
		idx := strings.Index(lower[offset:], w)
		wordStart := offset + idx
		offset = wordStart + len(w)
		if field, ok := fieldMentionWords[strings.Trim(w, ",.;:!?")]; ok {
			return field, offset, true
		}
	}
	return "", 0, false
}

// MenuSelection resolves a numbered reply against the change menu.
func MenuSelection(message string) (string, bool) {
	m := regexp.MustCompile(`\b([1-9])\b`).FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	n, _ := strconv.Atoi(m[1])
	if n < 1 || n > len(models.RequiredFields) {
		return "", false
	}
	return models.RequiredFields[n-1], true
}

// changeHandler applies replacement values during an active change flow.
type changeHandler struct {
	orchestrator *extract.Orchestrator
}

// ApplyReplacement validates message as the new value for the pending
// change field. ok=false means the value did not validate and the retry
// counter was bumped; exhausted reports the retry limit was hit and the
// change mode cleared.
func (h changeHandler) ApplyReplacement(message string, intent *models.BookingIntent) (ok, exhausted bool) {
	field := intent.Change.Field
	cand, found := h.extractFor(field, message, intent)
	if found {
		if _, applied := h.applyForced(cand, intent); applied {
			intent.Change = nil
			return true, false
		}
	}
	intent.Change.RetryCount++
	if intent.Change.RetryCount >= changeRetryLimit {
		intent.Change = nil
		return false, true
	}
	return false, false
}

// ApplyInline stores an inline "change X to Y" value. Free-text fields
// take the value verbatim; structured fields go through their extractor.
func (h changeHandler) ApplyInline(field, value string, intent *models.BookingIntent) bool {
	switch field {
	case models.FieldName:
		intent.Name = value
		return true
	case models.FieldAddress:
		intent.Address = value
		return true
	case models.FieldService, models.FieldPackage:
		intent.Set(field, value)
		return true
	}
	cand, found := h.extractFor(field, value, intent)
	if !found {
		return false
	}
	_, applied := h.applyForced(cand, intent)
	return applied
}

func (h changeHandler) extractFor(field, message string, intent *models.BookingIntent) (models.Candidate, bool) {
	switch field {
	case models.FieldEmail:
		return extract.EmailExtractor{}.Extract(message, nil)
	case models.FieldPhone:
		return extract.PhoneExtractor{}.Extract(message, nil)
	case models.FieldDate:
		return extract.DateExtractor{Now: h.orchestrator.Now}.Extract(message, nil)
	case models.FieldServiceCountry:
		return extract.CountryExtractor{}.Extract(message, nil)
	case models.FieldPincode:
		return extract.PincodeExtractor{Country: intent.ServiceCountry}.Extract(message, nil)
	case models.FieldName:
		return extract.NameExtractor{}.Extract(message, nil)
	case models.FieldAddress:
		return extract.AddressExtractor{}.Extract(message, nil)
	}
	return models.Candidate{}, false
}

// applyForced clears the slot first so ApplyCandidate overwrites it.
func (h changeHandler) applyForced(cand models.Candidate, intent *models.BookingIntent) (string, bool) {
	intent.Set(cand.Field, "")
	reason, ok := ApplyCandidate(cand, intent)
	return reason, ok
}
