package engine

import (
	"fmt"
	"strings"

	"glambook/agent/extract"
	"glambook/config"
	"glambook/models"
)

// ApplyCandidate validates one extracted value and stores it on the
// intent. It returns false (with a reason) when the value fails
// field-level validation; the extraction itself is then discarded.
func ApplyCandidate(cand models.Candidate, intent *models.BookingIntent) (string, bool) {
	switch cand.Field {
	case models.FieldEmail:
		if !models.ValidEmailShape(cand.Value) {
			return "email address looks malformed", false
		}
		intent.Email = strings.ToLower(cand.Value)

	case models.FieldPhone:
		if !models.ValidPhoneShape(cand.Value) {
			return "phone number looks malformed", false
		}
		intent.Phone = cand.Value
		intent.PhoneDetail = cand.Phone

	case models.FieldDate:
		intent.Date = cand.Value
		intent.DateMeta = cand.DateMeta

	case models.FieldServiceCountry:
		canonical, ok := extract.CanonicalCountry(cand.Value)
		if !ok {
			return fmt.Sprintf("we don't serve %q yet", cand.Value), false
		}
		intent.ServiceCountry = canonical

	case models.FieldPincode:
		if intent.ServiceCountry != "" {
			want, known := config.CountryPincodeLengths[intent.ServiceCountry]
			if known && len(cand.Value) != want {
				return fmt.Sprintf("a %s pincode has %d digits", intent.ServiceCountry, want), false
			}
		}
		intent.Pincode = cand.Value

	case models.FieldName:
		if len(cand.Value) < 2 {
			return "name is too short", false
		}
		intent.Name = cand.Value

	case models.FieldAddress:
		if len(cand.Value) < 5 {
			return "address is too short", false
		}
		intent.Address = cand.Value

	default:
		return "unknown field", false
	}
	return "", true
}

// ApplyExtraction stores every candidate of a pass, collecting the fields
// that stuck and the per-field rejections.
func ApplyExtraction(result *models.ExtractionResult, intent *models.BookingIntent) (applied []string, rejected []string) {
	for _, cand := range result.Candidates {
		if reason, ok := ApplyCandidate(cand, intent); ok {
			applied = append(applied, cand.Field)
		} else {
			rejected = append(rejected, reason)
		}
	}
	return applied, rejected
}
