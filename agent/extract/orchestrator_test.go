package extract

import (
	"context"
	"strings"
	"testing"

	"glambook/models"
)

func testOrchestrator() *Orchestrator {
	o := NewOrchestrator(nil, nil)
	o.Now = fixedNow
	return o
}

func TestExtractAllBulkMessage(t *testing.T) {
	o := testOrchestrator()
	intent := models.NewBookingIntent("en")

	msg := "My name is Priya Sharma, my email is priya@gmail.com, phone +919876543210, pincode 110001, address 12 MG Road Mumbai, date 15 March 2027"
	result := o.ExtractAll(context.Background(), msg, intent, nil)

	if result.Status != models.ExtractionComplete {
		t.Fatalf("status = %q, want complete (%d candidates)", result.Status, len(result.Candidates))
	}

	want := map[string]string{
		models.FieldEmail:          "priya@gmail.com",
		models.FieldPhone:          "+919876543210",
		models.FieldDate:           "2027-03-15",
		models.FieldPincode:        "110001",
		models.FieldName:           "Priya Sharma",
		models.FieldServiceCountry: "India",
	}
	for field, value := range want {
		cand, ok := result.Candidate(field)
		if !ok {
			t.Errorf("no candidate for %s", field)
			continue
		}
		if cand.Value != value {
			t.Errorf("%s = %q, want %q", field, cand.Value, value)
		}
	}
	if _, ok := result.Candidate(models.FieldAddress); !ok {
		t.Error("no candidate for address")
	}
	if result.Confidence < 1 || result.Confidence > 4 {
		t.Errorf("confidence = %v, want within [1,4]", result.Confidence)
	}
}

// Progressive cleaning: once the email and phone are consumed, the name
// heuristic must not pick up fragments of them.
func TestExtractAllProgressiveCleaning(t *testing.T) {
	o := testOrchestrator()
	intent := models.NewBookingIntent("en")

	msg := "My name is John, phone is +919876543210, email is john@gmail.com"
	result := o.ExtractAll(context.Background(), msg, intent, nil)

	if result.Status != models.ExtractionPartial {
		t.Fatalf("status = %q, want partial", result.Status)
	}
	name, ok := result.Candidate(models.FieldName)
	if !ok {
		t.Fatal("no name candidate")
	}
	if name.Value != "John" {
		t.Errorf("name = %q, want John", name.Value)
	}

	country, ok := result.Candidate(models.FieldServiceCountry)
	if !ok {
		t.Fatal("no inferred country candidate")
	}
	if country.Value != "India" || country.Method != "inferred_from_phone" {
		t.Errorf("country = %q via %q, want India via inferred_from_phone", country.Value, country.Method)
	}
}

func TestExtractAllSkipsFilledFields(t *testing.T) {
	o := testOrchestrator()
	intent := models.NewBookingIntent("en")
	intent.Email = "kept@gmail.com"

	result := o.ExtractAll(context.Background(), "new@gmail.com", intent, nil)
	if _, ok := result.Candidate(models.FieldEmail); ok {
		t.Error("email extraction should be skipped when the slot is filled")
	}
}

func TestExtractAllAmbiguousEmails(t *testing.T) {
	o := testOrchestrator()
	intent := models.NewBookingIntent("en")

	result := o.ExtractAll(context.Background(), "use a@gmail.com or b@yahoo.com", intent, nil)
	if len(result.AmbiguousEmails) != 2 {
		t.Fatalf("ambiguous emails = %v, want two options", result.AmbiguousEmails)
	}
	if _, ok := result.Candidate(models.FieldEmail); ok {
		t.Error("no email candidate should be produced while the choice is pending")
	}
}

func TestExtractAllCrossValidation(t *testing.T) {
	o := testOrchestrator()
	intent := models.NewBookingIntent("en")
	intent.ServiceCountry = "Nepal"

	result := o.ExtractAll(context.Background(), "+919876543210", intent, nil)
	if len(result.Warnings) == 0 {
		t.Fatal("expected a phone/service-country mismatch warning")
	}
	if !strings.Contains(result.Warnings[0], "India") || !strings.Contains(result.Warnings[0], "Nepal") {
		t.Errorf("warning = %q, want both countries named", result.Warnings[0])
	}
}

func TestExtractAllEmptyMessage(t *testing.T) {
	o := testOrchestrator()
	result := o.ExtractAll(context.Background(), "   ", models.NewBookingIntent("en"), nil)
	if result.Status != models.ExtractionFailed {
		t.Errorf("status = %q, want failed", result.Status)
	}
}

func TestIsBulkInput(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"a, b, c", true},
		{"+919876543210 and priya@gmail.com", true},
		{"priya@gmail.com", false},
		{"change my email to new@gmail.com", false},
		{"hello there", false},
	}
	for _, tt := range tests {
		if got := IsBulkInput(tt.message); got != tt.want {
			t.Errorf("IsBulkInput(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
