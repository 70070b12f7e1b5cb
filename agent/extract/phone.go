package extract

import (
	"fmt"
	"regexp"
	"strings"

	"glambook/models"
)

// phoneSpec describes one country's mobile number shape.
type phoneSpec struct {
	Country  string
	Code     string // dialing code with +
	MinLen   int    // national digits
	MaxLen   int
	Starts   string // allowed leading national digits, empty = any
	GroupAt  int    // split point for display formatting, 0 = no split
}

// phoneSpecs is checked in order; more specific codes (+977, +880, +971)
// must precede +91/+92/+1 prefix checks.
var phoneSpecs = []phoneSpec{
	{Country: "Nepal", Code: "+977", MinLen: 9, MaxLen: 10, Starts: "9", GroupAt: 3},
	{Country: "Bangladesh", Code: "+880", MinLen: 10, MaxLen: 10, Starts: "1", GroupAt: 4},
	{Country: "Dubai", Code: "+971", MinLen: 9, MaxLen: 9, Starts: "5", GroupAt: 2},
	{Country: "India", Code: "+91", MinLen: 10, MaxLen: 10, Starts: "6789", GroupAt: 5},
	{Country: "Pakistan", Code: "+92", MinLen: 10, MaxLen: 10, Starts: "3", GroupAt: 3},
	{Country: "USA", Code: "+1", MinLen: 10, MaxLen: 10, GroupAt: 3},
}

var (
	// A run of digits with optional separators, optionally led by + or 00.
	phoneRun = regexp.MustCompile(`(?:\+|00)?\d[\d\s\-().]{6,18}\d`)
	// Explicit indicator forms: "phone is ...", "call me on ...".
	phoneIndicator = regexp.MustCompile(`(?i)(?:phone|mobile|number|contact|whatsapp|call me on|call)\s*(?:no\.?|num)?\s*(?:is|:|-)?\s*((?:\+|00)?\d[\d\s\-().]{6,18}\d)`)
)

// PhoneExtractor finds and normalizes phone numbers.
type PhoneExtractor struct{}

func (PhoneExtractor) Field() string { return models.FieldPhone }

func (e PhoneExtractor) Extract(message string, history []string) (models.Candidate, bool) {
	message = cleanMessage(message)

	if m := phoneIndicator.FindStringSubmatch(message); m != nil {
		if info, ok := normalizePhone(m[1]); ok {
			return phoneCandidate(info, models.ConfidenceVeryHigh, "indicator", m[0]), true
		}
	}

	for _, raw := range phoneRun.FindAllString(message, -1) {
		if info, ok := normalizePhone(raw); ok {
			conf := models.ConfidenceHigh
			if !strings.HasPrefix(strings.TrimSpace(raw), "+") {
				conf = models.ConfidenceMedium
			}
			return phoneCandidate(info, conf, "pattern", raw), true
		}
	}

	for i := len(history) - 1; i >= 0; i-- {
		for _, raw := range phoneRun.FindAllString(history[i], -1) {
			if info, ok := normalizePhone(raw); ok {
				return phoneCandidate(info, models.ConfidenceLow, "history", ""), true
			}
		}
	}
	return models.Candidate{}, false
}

func phoneCandidate(info *models.PhoneInfo, conf models.Confidence, method, raw string) models.Candidate {
	return models.Candidate{
		Field:      models.FieldPhone,
		Value:      info.Full,
		Confidence: conf,
		Method:     method,
		Raw:        raw,
		Phone:      info,
	}
}

// normalizePhone strips separators and resolves the country, returning the
// structured number. Accepts +cc, 00cc, and bare national forms.
func normalizePhone(raw string) (*models.PhoneInfo, bool) {
	trimmed := strings.TrimSpace(raw)
	hasPlus := strings.HasPrefix(trimmed, "+")
	digits := digitsOnly(trimmed)
	if strings.HasPrefix(digits, "00") && len(digits) > 4 {
		hasPlus = true
		digits = digits[2:]
	}
	if digits == "" {
		return nil, false
	}

	if hasPlus {
		for _, spec := range phoneSpecs {
			cc := spec.Code[1:]
			if !strings.HasPrefix(digits, cc) {
				continue
			}
			national := digits[len(cc):]
			if spec.validNational(national) {
				return spec.info(national), true
			}
			return nil, false
		}
		return nil, false
	}

	// Bare national number: infer the country from shape. India goes
	// first because a plain 10-digit mobile is the most common input;
	// a 9-digit run starting 9 still lands on Nepal.
	for _, country := range bareInferenceOrder {
		spec, ok := specFor(country)
		if ok && spec.validNational(digits) {
			return spec.info(digits), true
		}
	}
	return nil, false
}

// bareInferenceOrder ranks countries for numbers typed without a dialing
// code. USA is absent: bare 10-digit runs never resolve to +1.
var bareInferenceOrder = []string{"India", "Nepal", "Bangladesh", "Pakistan", "Dubai"}

func specFor(country string) (phoneSpec, bool) {
	for _, spec := range phoneSpecs {
		if spec.Country == country {
			return spec, true
		}
	}
	return phoneSpec{}, false
}

func (s phoneSpec) validNational(national string) bool {
	if len(national) < s.MinLen || len(national) > s.MaxLen {
		return false
	}
	if s.Starts != "" && !strings.ContainsRune(s.Starts, rune(national[0])) {
		return false
	}
	return true
}

func (s phoneSpec) info(national string) *models.PhoneInfo {
	formatted := s.Code + " " + national
	if s.GroupAt > 0 && s.GroupAt < len(national) {
		formatted = fmt.Sprintf("%s %s %s", s.Code, national[:s.GroupAt], national[s.GroupAt:])
	}
	return &models.PhoneInfo{
		Full:        s.Code + national,
		CountryCode: s.Code,
		National:    national,
		Country:     s.Country,
		Formatted:   formatted,
	}
}

// PhoneCountry maps a normalized number back to its country name.
func PhoneCountry(full string) string {
	for _, spec := range phoneSpecs {
		if strings.HasPrefix(full, spec.Code) {
			return spec.Country
		}
	}
	return ""
}

// ValidatePhoneFor reports whether a normalized number belongs to the given
// service country. USA numbers never match a service country.
func ValidatePhoneFor(full, country string) bool {
	return PhoneCountry(full) == country
}
