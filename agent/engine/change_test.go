package engine

import (
	"testing"

	"glambook/agent/extract"
	"glambook/models"
)

func TestParseChangeRequest(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantField  string
		wantInline string
		wantMenu   bool
		wantOK     bool
	}{
		{
			name:       "email address maps to email not address",
			message:    "change my email address to new@gmail.com",
			wantField:  models.FieldEmail,
			wantInline: "new@gmail.com",
			wantOK:     true,
		},
		{
			name:       "inline address keeps original casing",
			message:    "change my address to Kathmandu, Nepal",
			wantField:  models.FieldAddress,
			wantInline: "Kathmandu, Nepal",
			wantOK:     true,
		},
		{
			name:       "booking date phrase",
			message:    "update the booking date to 15 March",
			wantField:  models.FieldDate,
			wantInline: "15 March",
			wantOK:     true,
		},
		{
			name:      "field without value",
			message:   "I need to correct the phone number",
			wantField: models.FieldPhone,
			wantOK:    true,
		},
		{
			name:     "bare change wants the menu",
			message:  "change",
			wantMenu: true,
			wantOK:   true,
		},
		{
			name:     "no mentionable field wants the menu",
			message:  "change my mind",
			wantMenu: true,
			wantOK:   true,
		},
		{
			name:    "bulk re-entry is not a change",
			message: "change these: name John, email a@gmail.com, phone +919876543210",
			wantOK:  false,
		},
		{
			name:     "polite lead-in still opens the menu",
			message:  "I want to change my details",
			wantMenu: true,
			wantOK:   true,
		},
		{
			name:    "trailing correct is a confirmation",
			message: "yes, that's correct",
			wantOK:  false,
		},
		{
			name:    "everything is correct is a confirmation",
			message: "yes, everything is correct",
			wantOK:  false,
		},
		{
			name:    "no change keyword",
			message: "my email is new@gmail.com",
			wantOK:  false,
		},
		{
			name:    "changed does not trigger",
			message: "I already booked elsewhere",
			wantOK:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := ParseChangeRequest(tt.message)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (req %+v)", ok, tt.wantOK, req)
			}
			if !ok {
				return
			}
			if req.Field != tt.wantField {
				t.Errorf("field = %q, want %q", req.Field, tt.wantField)
			}
			if req.InlineValue != tt.wantInline {
				t.Errorf("inline = %q, want %q", req.InlineValue, tt.wantInline)
			}
			if req.WantsMenu != tt.wantMenu {
				t.Errorf("wantsMenu = %v, want %v", req.WantsMenu, tt.wantMenu)
			}
		})
	}
}

func TestMenuSelection(t *testing.T) {
	if field, ok := MenuSelection("2"); !ok || field != models.FieldEmail {
		t.Errorf("MenuSelection(2) = %q, %v; want email", field, ok)
	}
	if field, ok := MenuSelection("I pick 5 please"); !ok || field != models.FieldDate {
		t.Errorf("MenuSelection(5) = %q, %v; want date", field, ok)
	}
	for _, msg := range []string{"0", "12", "none"} {
		if field, ok := MenuSelection(msg); ok {
			t.Errorf("MenuSelection(%q) = %q, want no match", msg, field)
		}
	}
}

func newChangeHandler() changeHandler {
	o := extract.NewOrchestrator(nil, nil)
	return changeHandler{orchestrator: o}
}

func TestApplyReplacementRetryLimit(t *testing.T) {
	h := newChangeHandler()
	intent := models.NewBookingIntent("en")
	intent.Change = &models.ChangeState{Field: models.FieldEmail}

	ok, exhausted := h.ApplyReplacement("that is not an email", intent)
	if ok || exhausted {
		t.Fatalf("first bad value: ok=%v exhausted=%v, want false/false", ok, exhausted)
	}
	if intent.Change == nil || intent.Change.RetryCount != 1 {
		t.Fatalf("change state = %+v, want retry count 1", intent.Change)
	}

	ok, exhausted = h.ApplyReplacement("still not an email", intent)
	if ok || !exhausted {
		t.Fatalf("second bad value: ok=%v exhausted=%v, want false/true", ok, exhausted)
	}
	if intent.Change != nil {
		t.Error("change state should be cleared after exhaustion")
	}
}

func TestApplyReplacementSuccess(t *testing.T) {
	h := newChangeHandler()
	intent := models.NewBookingIntent("en")
	intent.Email = "old@gmail.com"
	intent.Change = &models.ChangeState{Field: models.FieldEmail}

	ok, exhausted := h.ApplyReplacement("new@gmail.com", intent)
	if !ok || exhausted {
		t.Fatalf("ok=%v exhausted=%v, want true/false", ok, exhausted)
	}
	if intent.Email != "new@gmail.com" {
		t.Errorf("email = %q, want new@gmail.com", intent.Email)
	}
	if intent.Change != nil {
		t.Error("change state should be cleared after a successful apply")
	}
}

func TestApplyInline(t *testing.T) {
	h := newChangeHandler()
	intent := models.NewBookingIntent("en")

	// Free-text fields take the value verbatim.
	if !h.ApplyInline(models.FieldAddress, "Flat 4B, Thamel, Kathmandu", intent) {
		t.Fatal("verbatim address apply failed")
	}
	if intent.Address != "Flat 4B, Thamel, Kathmandu" {
		t.Errorf("address = %q, want the verbatim value", intent.Address)
	}

	if !h.ApplyInline(models.FieldName, "priya sharma", intent) {
		t.Fatal("verbatim name apply failed")
	}
	if intent.Name != "priya sharma" {
		t.Errorf("name = %q, want the verbatim value", intent.Name)
	}

	// Structured fields validate through their extractor.
	if h.ApplyInline(models.FieldEmail, "not an email", intent) {
		t.Error("malformed inline email should be rejected")
	}
	if !h.ApplyInline(models.FieldPhone, "+9779841234567", intent) {
		t.Fatal("inline phone apply failed")
	}
	if intent.Phone != "+9779841234567" {
		t.Errorf("phone = %q, want +9779841234567", intent.Phone)
	}
	if intent.PhoneDetail == nil || intent.PhoneDetail.Country != "Nepal" {
		t.Errorf("phone detail = %+v, want Nepal", intent.PhoneDetail)
	}
}
