package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"glambook/models"

	"go.uber.org/zap"
)

// fieldKeyword maps declaration keywords to canonical fields for the
// position pre-scan ("name is X, email is Y" style messages).
var fieldKeywords = []struct {
	Field string
	Re    *regexp.Regexp
}{
	{models.FieldName, regexp.MustCompile(`(?i)\bname\b`)},
	{models.FieldEmail, regexp.MustCompile(`(?i)\be?-?mail\b`)},
	{models.FieldPhone, regexp.MustCompile(`(?i)\b(?:phone|mobile|whatsapp|contact)\b`)},
	{models.FieldDate, regexp.MustCompile(`(?i)\bdate\b`)},
	{models.FieldAddress, regexp.MustCompile(`(?i)\b(?:address|venue|location)\b`)},
	{models.FieldPincode, regexp.MustCompile(`(?i)\b(?:pincode|pin\s*code|zip|postal)\b`)},
	{models.FieldServiceCountry, regexp.MustCompile(`(?i)\bcountry\b`)},
}

// fieldSpan is one declared segment of the message owned by a field.
type fieldSpan struct {
	Field string
	Start int
	Text  string
}

// extractionOrder is the fixed priority: most parseable first, address
// last because it can swallow anything.
var extractionOrder = []string{
	models.FieldEmail, models.FieldPhone, models.FieldDate,
	models.FieldPincode, models.FieldServiceCountry,
	models.FieldName, models.FieldAddress,
}

// dataPattern recognises segments that carry structured field data, used
// for bulk comma-separated input detection.
var dataPattern = regexp.MustCompile(`(?i)@|\+?\d{4,}|\b(?:india|nepal|pakistan|bangladesh|dubai)\b`)

// Orchestrator runs all field extractors over one message with
// progressive working-message cleaning.
type Orchestrator struct {
	Resolver AddressResolver  // optional model-backed address puller
	Now      func() time.Time // injectable clock for date extraction
	Logger   *zap.Logger
}

// NewOrchestrator wires the default extractor set.
func NewOrchestrator(resolver AddressResolver, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{Resolver: resolver, Logger: logger}
}

// ExtractAll scans the message for every field the intent is still
// missing. Consumed spans are removed from the working copy word by word,
// so the name heuristic never eats a phone number and the address
// extractor never swallows an email.
func (o *Orchestrator) ExtractAll(ctx context.Context, message string, intent *models.BookingIntent, history []string) *models.ExtractionResult {
	result := &models.ExtractionResult{Status: models.ExtractionFailed}
	working := cleanMessage(message)
	if working == "" {
		return result
	}

	spans := scanFieldSpans(working)
	bulk := IsBulkInput(working)

	// Ambiguous emails short-circuit the email slot but nothing else.
	if intent.Email == "" {
		if all := (EmailExtractor{}).FindAll(working); len(all) > 1 {
			result.AmbiguousEmails = all
		}
	}

	for _, field := range extractionOrder {
		if intent.Get(field) != "" {
			continue
		}
		if field == models.FieldEmail && len(result.AmbiguousEmails) > 1 {
			continue
		}

		target := working
		if span, ok := spans[field]; ok && !bulk {
			// A declared span bounds the search but cleaning still runs
			// against the full working message.
			if span.Text != "" {
				target = span.Text
			}
		}

		cand, ok := o.extractField(ctx, field, target, working, intent, history)
		if !ok {
			continue
		}
		result.Candidates = append(result.Candidates, cand)

		working = removeWords(working, cand.Raw)
		working = removeWords(working, cand.Value)
		if cand.Phone != nil {
			working = removeWords(working, cand.Phone.National)
		}
	}

	o.infer(result, intent)
	o.crossValidate(result, intent)
	o.finalize(result)

	o.Logger.Debug("extraction pass",
		zap.Int("fields", len(result.Candidates)),
		zap.String("status", result.Status),
		zap.Float64("confidence", result.Confidence))
	return result
}

func (o *Orchestrator) extractField(ctx context.Context, field, target, working string, intent *models.BookingIntent, history []string) (models.Candidate, bool) {
	switch field {
	case models.FieldEmail:
		return EmailExtractor{}.Extract(target, history)
	case models.FieldPhone:
		return PhoneExtractor{}.Extract(target, history)
	case models.FieldDate:
		return DateExtractor{Now: o.Now}.Extract(target, history)
	case models.FieldPincode:
		return PincodeExtractor{Country: intent.ServiceCountry}.Extract(target, nil)
	case models.FieldServiceCountry:
		return CountryExtractor{}.Extract(target, nil)
	case models.FieldName:
		// Names come from the cleaned working copy so consumed values
		// can no longer look like capitalized words.
		return NameExtractor{}.Extract(working, nil)
	case models.FieldAddress:
		if target == working {
			return AddressExtractor{}.ExtractWithResolver(ctx, o.Resolver, working, intent.Collected())
		}
		return AddressExtractor{}.ExtractWithResolver(ctx, o.Resolver, target, intent.Collected())
	}
	return models.Candidate{}, false
}

// scanFieldSpans bounds each declared field's text: from its keyword to
// the next field keyword (or end of message).
func scanFieldSpans(message string) map[string]fieldSpan {
	var found []fieldSpan
	for _, fk := range fieldKeywords {
		if loc := fk.Re.FindStringIndex(message); loc != nil {
			found = append(found, fieldSpan{Field: fk.Field, Start: loc[0]})
		}
	}
	if len(found) == 0 {
		return nil
	}
	// Order by position.
	for i := 0; i < len(found); i++ {
		for j := i + 1; j < len(found); j++ {
			if found[j].Start < found[i].Start {
				found[i], found[j] = found[j], found[i]
			}
		}
	}
	spans := make(map[string]fieldSpan, len(found))
	for i, fs := range found {
		end := len(message)
		if i+1 < len(found) {
			end = found[i+1].Start
		}
		fs.Text = strings.Trim(message[fs.Start:end], " ,.;")
		if _, dup := spans[fs.Field]; !dup {
			spans[fs.Field] = fs
		}
	}
	return spans
}

// IsBulkInput reports whether the message looks like comma-separated bulk
// data: two or more commas, or two or more structured data fragments.
func IsBulkInput(message string) bool {
	if strings.Count(message, ",") >= 2 {
		return true
	}
	return len(dataPattern.FindAllString(message, -1)) >= 2
}

// infer derives the service country when the user never named one.
func (o *Orchestrator) infer(result *models.ExtractionResult, intent *models.BookingIntent) {
	if intent.ServiceCountry != "" {
		return
	}
	if _, ok := result.Candidate(models.FieldServiceCountry); ok {
		return
	}
	if phone, ok := result.Candidate(models.FieldPhone); ok && phone.Phone != nil && phone.Phone.Country != "USA" {
		result.Candidates = append(result.Candidates, models.Candidate{
			Field:      models.FieldServiceCountry,
			Value:      phone.Phone.Country,
			Confidence: models.ConfidenceMedium,
			Method:     "inferred_from_phone",
		})
		return
	}
	if pin, ok := result.Candidate(models.FieldPincode); ok {
		if country := PincodeCountry(pin.Value); country != "" {
			result.Candidates = append(result.Candidates, models.Candidate{
				Field:      models.FieldServiceCountry,
				Value:      country,
				Confidence: models.ConfidenceLow,
				Method:     "inferred_from_pincode",
			})
		}
	}
}

// crossValidate attaches warnings for suspicious combinations without
// rejecting anything.
func (o *Orchestrator) crossValidate(result *models.ExtractionResult, intent *models.BookingIntent) {
	phoneCountry := ""
	if cand, ok := result.Candidate(models.FieldPhone); ok && cand.Phone != nil {
		phoneCountry = cand.Phone.Country
	} else if intent.PhoneDetail != nil {
		phoneCountry = intent.PhoneDetail.Country
	}

	serviceCountry := intent.ServiceCountry
	if cand, ok := result.Candidate(models.FieldServiceCountry); ok && cand.Method != "inferred_from_phone" {
		serviceCountry = cand.Value
	}

	if phoneCountry != "" && serviceCountry != "" && phoneCountry != serviceCountry && phoneCountry != "USA" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("phone number looks like %s but service country is %s", phoneCountry, serviceCountry))
	}

	if cand, ok := result.Candidate(models.FieldDate); ok && cand.DateMeta != nil && cand.DateMeta.UserProvidedYear != 0 {
		if t, err := time.Parse("2006-01-02", cand.Value); err == nil {
			now := time.Now()
			if o.Now != nil {
				now = o.Now()
			}
			if t.Before(now.Truncate(24 * time.Hour)) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("requested date %s is in the past", cand.Value))
			}
		}
	}
}

// finalize computes status and averaged confidence.
func (o *Orchestrator) finalize(result *models.ExtractionResult) {
	n := len(result.Candidates)
	switch {
	case n >= 5:
		result.Status = models.ExtractionComplete
	case n >= 1:
		result.Status = models.ExtractionPartial
	default:
		result.Status = models.ExtractionFailed
		return
	}
	total := 0
	for _, c := range result.Candidates {
		total += c.Confidence.Score()
	}
	result.Confidence = float64(total) / float64(n)
}
