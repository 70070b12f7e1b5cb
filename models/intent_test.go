package models

import (
	"reflect"
	"testing"
)

func filledIntent() *BookingIntent {
	return &BookingIntent{
		Service:        "Bridal Makeup Services",
		Package:        "Signature Bridal Makeup",
		Name:           "Priya Sharma",
		Email:          "priya@gmail.com",
		Phone:          "+919876543210",
		ServiceCountry: "India",
		Date:           "2027-03-15",
		Address:        "12 MG Road, Andheri",
		Pincode:        "400001",
		Language:       "en",
	}
}

func TestIsComplete(t *testing.T) {
	b := filledIntent()
	if !b.IsComplete() {
		t.Fatalf("filled intent incomplete: missing %v", b.MissingFields())
	}

	empty := NewBookingIntent("en")
	if empty.IsComplete() {
		t.Error("empty intent must not be complete")
	}

	badPhone := filledIntent()
	badPhone.Phone = "9876543210" // no country code
	if badPhone.IsComplete() {
		t.Error("malformed phone must fail completeness")
	}

	badEmail := filledIntent()
	badEmail.Email = "not-an-email"
	if badEmail.IsComplete() {
		t.Error("malformed email must fail completeness")
	}
}

func TestMissingFieldsOrderAndLabels(t *testing.T) {
	got := NewBookingIntent("en").MissingFields()
	want := []string{
		"name", "email address", "phone number with country code",
		"service country", "preferred date", "address", "postal code",
		"service", "package",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields = %v, want %v", got, want)
	}
}

func TestMissingFieldsCountsMalformedValues(t *testing.T) {
	b := filledIntent()
	b.Email = "broken"
	got := b.MissingFields()
	if len(got) != 1 || got[0] != "email address" {
		t.Errorf("MissingFields = %v, want just the email label", got)
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	b := NewBookingIntent("en")
	for _, f := range RequiredFields {
		b.Set(f, "value-"+f)
		if got := b.Get(f); got != "value-"+f {
			t.Errorf("Get(%s) = %q after Set", f, got)
		}
	}
}

func TestCollected(t *testing.T) {
	b := NewBookingIntent("en")
	b.Name = "Priya"
	b.Email = "priya@gmail.com"
	got := b.Collected()
	want := map[string]string{FieldName: "Priya", FieldEmail: "priya@gmail.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collected = %v, want %v", got, want)
	}
}

func TestResetKeepsLanguage(t *testing.T) {
	b := filledIntent()
	b.Language = "ne"
	b.Change = &ChangeState{Field: FieldEmail}
	b.Reset()
	if b.Name != "" || b.Service != "" || b.Change != nil {
		t.Errorf("Reset left data behind: %+v", b)
	}
	if b.Language != "ne" {
		t.Errorf("language = %q, want ne", b.Language)
	}
}

func TestValidShapes(t *testing.T) {
	if !ValidEmailShape("a.b-c+tag@sub.domain.co") {
		t.Error("valid email rejected")
	}
	for _, s := range []string{"@gmail.com", "a@b", "a b@gmail.com", ""} {
		if ValidEmailShape(s) {
			t.Errorf("ValidEmailShape(%q) = true", s)
		}
	}
	if !ValidPhoneShape("+919876543210") {
		t.Error("valid phone rejected")
	}
	for _, s := range []string{"9876543210", "+12", "+91 98765", ""} {
		if ValidPhoneShape(s) {
			t.Errorf("ValidPhoneShape(%q) = true", s)
		}
	}
}
