package extract

import (
	"regexp"
	"strings"

	"glambook/config"
	"glambook/models"
)

var (
	pincodeIndicator = regexp.MustCompile(`(?i)(?:pincode|pin\s*code|zip\s*code|zip|postal\s*code|pin)\s*(?:is|:|-)?\s*(\d{4,6})\b`)
	digitRun         = regexp.MustCompile(`\b\d{4,6}\b`)
)

// PincodeExtractor finds postal codes. A known service country narrows
// the accepted length; without one any serviceable shape is accepted.
type PincodeExtractor struct {
	// Country is the already-known service country, may be empty.
	Country string
}

func (PincodeExtractor) Field() string { return models.FieldPincode }

func (e PincodeExtractor) Extract(message string, history []string) (models.Candidate, bool) {
	message = cleanMessage(message)

	if m := pincodeIndicator.FindStringSubmatch(message); m != nil {
		if e.acceptable(m[1]) {
			return models.Candidate{
				Field:      models.FieldPincode,
				Value:      m[1],
				Confidence: models.ConfidenceVeryHigh,
				Method:     "indicator",
				Raw:        m[0],
			}, true
		}
	}

	for _, run := range digitRun.FindAllString(message, -1) {
		if !e.acceptable(run) {
			continue
		}
		// Standalone digit runs only: a run inside a longer number (part
		// of a phone) never reaches here because \b bounds it, but a run
		// that also parses as a year is skipped.
		if y, ok := ExtractYear(run); ok && len(run) == 4 && y >= 2020 {
			continue
		}
		return models.Candidate{
			Field:      models.FieldPincode,
			Value:      run,
			Confidence: models.ConfidenceMedium,
			Method:     "pattern",
			Raw:        run,
		}, true
	}
	return models.Candidate{}, false
}

// acceptable checks the digit count against the country table.
func (e PincodeExtractor) acceptable(code string) bool {
	if e.Country != "" {
		want, ok := config.CountryPincodeLengths[e.Country]
		if !ok {
			return false
		}
		if len(code) != want {
			return false
		}
		if e.Country == "India" && !strings.ContainsRune("12345678", rune(code[0])) {
			return false
		}
		return true
	}
	for country, want := range config.CountryPincodeLengths {
		if len(code) != want {
			continue
		}
		if country == "India" && !strings.ContainsRune("12345678", rune(code[0])) {
			continue
		}
		return true
	}
	return false
}

// PincodeCountry guesses the country a pincode belongs to, "" if ambiguous.
// Only India (6 digits) and Bangladesh (4 digits) have unique lengths.
func PincodeCountry(code string) string {
	switch len(code) {
	case 6:
		if strings.ContainsRune("12345678", rune(code[0])) {
			return "India"
		}
	case 4:
		return "Bangladesh"
	}
	return ""
}
