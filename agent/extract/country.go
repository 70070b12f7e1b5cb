package extract

import (
	"regexp"
	"strings"

	"glambook/models"
)

// countryAliases maps lowercase mentions to the canonical country name.
var countryAliases = map[string]string{
	"india": "India", "bharat": "India",
	"nepal":    "Nepal",
	"pakistan": "Pakistan",
	"bangladesh": "Bangladesh", "bd": "Bangladesh",
	"dubai": "Dubai", "uae": "Dubai", "united arab emirates": "Dubai",
	"emirates": "Dubai",
}

// cityCountries maps well-known cities to their country, used as a hint
// when no country is named outright.
var cityCountries = map[string]string{
	"mumbai": "India", "delhi": "India", "bangalore": "India",
	"bengaluru": "India", "chennai": "India", "kolkata": "India",
	"hyderabad": "India", "pune": "India", "jaipur": "India",
	"ahmedabad": "India", "lucknow": "India", "chandigarh": "India",
	"kathmandu": "Nepal", "pokhara": "Nepal", "lalitpur": "Nepal",
	"karachi": "Pakistan", "lahore": "Pakistan", "islamabad": "Pakistan",
	"dhaka": "Bangladesh", "chittagong": "Bangladesh", "sylhet": "Bangladesh",
	"sharjah": "Dubai", "abu dhabi": "Dubai", "ajman": "Dubai",
}

// CountryExtractor resolves the service country from names, aliases and
// city hints.
type CountryExtractor struct{}

func (CountryExtractor) Field() string { return models.FieldServiceCountry }

func (e CountryExtractor) Extract(message string, history []string) (models.Candidate, bool) {
	msgLower := strings.ToLower(cleanMessage(message))

	// Multi-word aliases first, then single tokens.
	for alias, country := range countryAliases {
		if !strings.Contains(alias, " ") {
			continue
		}
		if strings.Contains(msgLower, alias) {
			return countryCandidate(country, models.ConfidenceHigh, "alias", alias), true
		}
	}
	for _, w := range strings.Fields(msgLower) {
		w = strings.Trim(w, ",.;:!?")
		if country, ok := countryAliases[w]; ok {
			return countryCandidate(country, models.ConfidenceHigh, "name", w), true
		}
	}

	for city, country := range cityCountries {
		re := regexp.MustCompile(`\b` + city + `\b`)
		if re.MatchString(msgLower) {
			return countryCandidate(country, models.ConfidenceMedium, "city", city), true
		}
	}

	return models.Candidate{}, false
}

func countryCandidate(country string, conf models.Confidence, method, raw string) models.Candidate {
	return models.Candidate{
		Field:      models.FieldServiceCountry,
		Value:      country,
		Confidence: conf,
		Method:     method,
		Raw:        raw,
	}
}

// CanonicalCountry resolves a free-form mention to a serviceable country.
func CanonicalCountry(s string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if c, ok := countryAliases[lower]; ok {
		return c, true
	}
	if c, ok := cityCountries[lower]; ok {
		return c, true
	}
	return "", false
}
