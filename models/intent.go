package models

import "regexp"

// Canonical field keys for a booking intent.
const (
	FieldService        = "service"
	FieldPackage        = "package"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldServiceCountry = "service_country"
	FieldDate           = "date"
	FieldAddress        = "address"
	FieldPincode        = "pincode"
)

// RequiredFields lists every field a complete booking needs, in the order
// they are reported back to the user.
var RequiredFields = []string{
	FieldName, FieldEmail, FieldPhone, FieldServiceCountry,
	FieldDate, FieldAddress, FieldPincode, FieldService, FieldPackage,
}

// FieldLabels maps canonical field keys to the wording used in prompts.
var FieldLabels = map[string]string{
	FieldService:        "service",
	FieldPackage:        "package",
	FieldName:           "name",
	FieldEmail:          "email address",
	FieldPhone:          "phone number with country code",
	FieldServiceCountry: "service country",
	FieldDate:           "preferred date",
	FieldAddress:        "address",
	FieldPincode:        "postal code",
}

var (
	emailShape = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._%+-]*@[a-zA-Z0-9][a-zA-Z0-9.-]*\.[a-zA-Z]{2,}$`)
	phoneShape = regexp.MustCompile(`^\+\d{7,15}$`)
)

// ValidEmailShape reports whether s looks like a deliverable email address.
func ValidEmailShape(s string) bool { return emailShape.MatchString(s) }

// ValidPhoneShape reports whether s is a normalized international number.
func ValidPhoneShape(s string) bool { return phoneShape.MatchString(s) }

// PhoneInfo carries the structured view of an extracted phone number.
type PhoneInfo struct {
	Full        string `json:"full" bson:"full"`               // +919876543210
	CountryCode string `json:"countryCode" bson:"countryCode"` // +91
	National    string `json:"national" bson:"national"`       // 9876543210
	Country     string `json:"country" bson:"country"`         // India
	Formatted   string `json:"formatted" bson:"formatted"`     // +91 98765 43210
}

// ChangeState tracks an in-progress field correction.
type ChangeState struct {
	Field      string `json:"field" bson:"field"`
	RetryCount int    `json:"retryCount" bson:"retryCount"`
	MenuShown  bool   `json:"menuShown" bson:"menuShown"`
}

// SequentialState tracks one-field-at-a-time collection.
type SequentialState struct {
	Active         bool   `json:"active" bson:"active"`
	LastAskedField string `json:"lastAskedField" bson:"lastAskedField"`
}

// EmailSelection holds ambiguous email candidates awaiting a user choice.
type EmailSelection struct {
	Options []string `json:"options" bson:"options"`
}

// DateInfo preserves how the booking date was captured.
type DateInfo struct {
	Original         string `json:"original" bson:"original"`
	NeedsYear        bool   `json:"needsYear" bson:"needsYear"`
	UserProvidedYear int    `json:"userProvidedYear,omitempty" bson:"userProvidedYear,omitempty"`
}

// BookingIntent is the slot container filled over the conversation.
type BookingIntent struct {
	Service        string     `json:"service" bson:"service"`
	Package        string     `json:"package" bson:"package"`
	Name           string     `json:"name" bson:"name"`
	Email          string     `json:"email" bson:"email"`
	Phone          string     `json:"phone" bson:"phone"` // normalized +<cc><digits>
	PhoneDetail    *PhoneInfo `json:"phoneDetail,omitempty" bson:"phoneDetail,omitempty"`
	ServiceCountry string     `json:"serviceCountry" bson:"serviceCountry"`
	Date           string     `json:"date" bson:"date"` // YYYY-MM-DD
	Address        string     `json:"address" bson:"address"`
	Pincode        string     `json:"pincode" bson:"pincode"`
	Language       string     `json:"language" bson:"language"`

	// Sub-flow state. Nil when the corresponding flow is inactive.
	Change      *ChangeState     `json:"change,omitempty" bson:"change,omitempty"`
	Sequential  *SequentialState `json:"sequential,omitempty" bson:"sequential,omitempty"`
	EmailChoice *EmailSelection  `json:"emailChoice,omitempty" bson:"emailChoice,omitempty"`
	DateMeta    *DateInfo        `json:"dateMeta,omitempty" bson:"dateMeta,omitempty"`
}

// NewBookingIntent returns an empty intent for the given reply language.
func NewBookingIntent(language string) *BookingIntent {
	if language == "" {
		language = "en"
	}
	return &BookingIntent{Language: language}
}

// Get returns the stored value for a canonical field key.
func (b *BookingIntent) Get(field string) string {
	switch field {
	case FieldService:
		return b.Service
	case FieldPackage:
		return b.Package
	case FieldName:
		return b.Name
	case FieldEmail:
		return b.Email
	case FieldPhone:
		return b.Phone
	case FieldServiceCountry:
		return b.ServiceCountry
	case FieldDate:
		return b.Date
	case FieldAddress:
		return b.Address
	case FieldPincode:
		return b.Pincode
	}
	return ""
}

// Set stores a value under a canonical field key.
func (b *BookingIntent) Set(field, value string) {
	switch field {
	case FieldService:
		b.Service = value
	case FieldPackage:
		b.Package = value
	case FieldName:
		b.Name = value
	case FieldEmail:
		b.Email = value
	case FieldPhone:
		b.Phone = value
	case FieldServiceCountry:
		b.ServiceCountry = value
	case FieldDate:
		b.Date = value
	case FieldAddress:
		b.Address = value
	case FieldPincode:
		b.Pincode = value
	}
}

// IsComplete reports whether every required field is present and the email
// and phone pass shape validation.
func (b *BookingIntent) IsComplete() bool {
	for _, f := range RequiredFields {
		if b.Get(f) == "" {
			return false
		}
	}
	if !ValidEmailShape(b.Email) {
		return false
	}
	return ValidPhoneShape(b.Phone)
}

// MissingFields returns the human-readable labels of fields still needed,
// counting malformed email/phone values as missing.
func (b *BookingIntent) MissingFields() []string {
	var missing []string
	for _, f := range RequiredFields {
		v := b.Get(f)
		switch {
		case v == "":
			missing = append(missing, FieldLabels[f])
		case f == FieldEmail && !ValidEmailShape(v):
			missing = append(missing, FieldLabels[f])
		case f == FieldPhone && !ValidPhoneShape(v):
			missing = append(missing, FieldLabels[f])
		}
	}
	return missing
}

// MissingFieldKeys returns canonical keys instead of labels.
func (b *BookingIntent) MissingFieldKeys() []string {
	var missing []string
	for _, f := range RequiredFields {
		v := b.Get(f)
		switch {
		case v == "":
			missing = append(missing, f)
		case f == FieldEmail && !ValidEmailShape(v):
			missing = append(missing, f)
		case f == FieldPhone && !ValidPhoneShape(v):
			missing = append(missing, f)
		}
	}
	return missing
}

// Collected returns the filled fields keyed by canonical name.
func (b *BookingIntent) Collected() map[string]string {
	out := make(map[string]string)
	for _, f := range RequiredFields {
		if v := b.Get(f); v != "" {
			out[f] = v
		}
	}
	return out
}

// Reset clears every field and sub-flow, keeping only the language.
func (b *BookingIntent) Reset() {
	lang := b.Language
	*b = BookingIntent{Language: lang}
}

// ClearSubFlows drops any pending change/sequential/selection state.
func (b *BookingIntent) ClearSubFlows() {
	b.Change = nil
	b.Sequential = nil
	b.EmailChoice = nil
}
