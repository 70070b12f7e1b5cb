package extract

import (
	"regexp"
	"strings"

	"glambook/models"
)

var (
	emailStrict     = regexp.MustCompile(`\b[a-zA-Z0-9][a-zA-Z0-9._%-]{0,63}@[a-zA-Z0-9][a-zA-Z0-9.-]{0,253}\.[a-zA-Z]{2,10}\b`)
	emailPermissive = regexp.MustCompile(`\b[a-zA-Z0-9][a-zA-Z0-9._%+-]*@[a-zA-Z0-9][a-zA-Z0-9.-]*\.[a-zA-Z]{2,}\b`)
	emailIndicator  = regexp.MustCompile(`(?i)(?:my\s+)?(?:email|e-mail|mail)\s*(?:id|address)?\s*(?:is|:|-)?\s*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
)

// suspiciousEmail rejects things that match the shape but are never a real
// inbox: file names, test domains, IP hosts, doubled dots.
var suspiciousEmail = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|pdf|doc|docx|txt|zip)$`),
	regexp.MustCompile(`(?i)@(localhost|test|example|dummy|fake)\b`),
	regexp.MustCompile(`(?i)^(test|demo|example|dummy|fake)@`),
	regexp.MustCompile(`@\d+\.\d+\.\d+\.\d+`),
	regexp.MustCompile(`\.\.`),
}

// highTrustProviders get a confidence bump; everything else is medium.
var highTrustProviders = map[string]bool{
	"gmail.com": true, "yahoo.com": true, "outlook.com": true,
	"hotmail.com": true, "icloud.com": true, "protonmail.com": true,
	"rediffmail.com": true, "live.com": true,
}

// EmailExtractor finds email addresses. When several distinct addresses
// appear in one message it reports all of them via FindAll so the caller
// can start the selection sub-flow.
type EmailExtractor struct{}

func (EmailExtractor) Field() string { return models.FieldEmail }

func (e EmailExtractor) Extract(message string, history []string) (models.Candidate, bool) {
	message = cleanMessage(message)

	if m := emailIndicator.FindStringSubmatch(message); m != nil {
		addr := strings.ToLower(m[1])
		if emailAcceptable(addr) {
			return emailCandidate(addr, models.ConfidenceVeryHigh, "indicator", m[0]), true
		}
	}

	candidates := e.FindAll(message)
	if len(candidates) == 0 {
		for i := len(history) - 1; i >= 0; i-- {
			if got := e.FindAll(history[i]); len(got) > 0 {
				return emailCandidate(got[0], models.ConfidenceLow, "history", ""), true
			}
		}
		return models.Candidate{}, false
	}

	best := candidates[0]
	conf := models.ConfidenceMedium
	if at := strings.IndexByte(best, '@'); at >= 0 && highTrustProviders[best[at+1:]] {
		conf = models.ConfidenceHigh
	}
	return emailCandidate(best, conf, "pattern", best), true
}

// FindAll returns every distinct acceptable address in the message, in
// order of appearance.
func (EmailExtractor) FindAll(message string) []string {
	matches := emailStrict.FindAllString(message, -1)
	if len(matches) == 0 {
		matches = emailPermissive.FindAllString(message, -1)
	}
	seen := make(map[string]bool)
	var out []string
	for _, m := range matches {
		addr := strings.ToLower(m)
		if seen[addr] || !emailAcceptable(addr) {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}

func emailAcceptable(addr string) bool {
	for _, re := range suspiciousEmail {
		if re.MatchString(addr) {
			return false
		}
	}
	return models.ValidEmailShape(addr)
}

func emailCandidate(addr string, conf models.Confidence, method, raw string) models.Candidate {
	return models.Candidate{
		Field:      models.FieldEmail,
		Value:      addr,
		Confidence: conf,
		Method:     method,
		Raw:        raw,
	}
}
