package models

// Confidence is the tier assigned to one extracted value.
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "very_high"
	ConfidenceHigh     Confidence = "high"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceLow      Confidence = "low"
)

// Score maps a tier to its numeric weight (4..1). Unknown tiers score 1.
func (c Confidence) Score() int {
	switch c {
	case ConfidenceVeryHigh:
		return 4
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	}
	return 1
}

// Candidate is one extracted field value with provenance.
type Candidate struct {
	Field      string     `json:"field"`
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
	Method     string     `json:"method"` // which strategy matched
	Raw        string     `json:"raw"`    // the span consumed from the message

	// Field-specific extras.
	Phone    *PhoneInfo `json:"phone,omitempty"`
	DateMeta *DateInfo  `json:"dateMeta,omitempty"`
}

// Extraction statuses.
const (
	ExtractionComplete = "complete" // five or more fields pulled in one pass
	ExtractionPartial  = "partial"
	ExtractionFailed   = "failed"
)

// ExtractionResult is the outcome of one multi-field extraction pass.
type ExtractionResult struct {
	Candidates []Candidate `json:"candidates"`
	Status     string      `json:"status"`
	Confidence float64     `json:"confidence"` // averaged tier score, 1..4
	Warnings   []string    `json:"warnings"`

	// AmbiguousEmails is set when several distinct addresses were found and
	// the caller must ask the user to pick one.
	AmbiguousEmails []string `json:"ambiguousEmails,omitempty"`
}

// Candidate returns the candidate for a field, if one was extracted.
func (r *ExtractionResult) Candidate(field string) (Candidate, bool) {
	for _, c := range r.Candidates {
		if c.Field == field {
			return c, true
		}
	}
	return Candidate{}, false
}
