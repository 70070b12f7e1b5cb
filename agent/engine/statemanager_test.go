package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"glambook/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to models.BookingState }{
		{models.StateGreeting, models.StateSelectingService},
		{models.StateGreeting, models.StateInfoMode},
		{models.StateInfoMode, models.StateSelectingService},
		{models.StateSelectingService, models.StateSelectingPackage},
		{models.StateSelectingPackage, models.StateCollectingDetails},
		{models.StateCollectingDetails, models.StateConfirming},
		{models.StateCollectingDetails, models.StateGreeting},
		{models.StateConfirming, models.StateOTPSent},
		{models.StateConfirming, models.StateCollectingDetails},
		{models.StateOTPSent, models.StateCompleted},
		{models.StateOTPSent, models.StateGreeting},
		{models.StateCompleted, models.StateGreeting},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tr.from, tr.to)
		}
	}

	forbidden := []struct{ from, to models.BookingState }{
		{models.StateGreeting, models.StateConfirming},
		{models.StateGreeting, models.StateOTPSent},
		{models.StateInfoMode, models.StateCollectingDetails},
		{models.StateSelectingService, models.StateConfirming},
		{models.StateOTPSent, models.StateCollectingDetails},
		{models.StateOTPSent, models.StateConfirming},
		{models.StateCompleted, models.StateOTPSent},
	}
	for _, tr := range forbidden {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tr.from, tr.to)
		}
	}

	// Staying put is always allowed.
	for _, s := range linearOrder {
		if !CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) = false, self-loops are legal", s, s)
		}
	}
}

func TestValidateStateRequirements(t *testing.T) {
	intent := models.NewBookingIntent("en")
	if missing := ValidateStateRequirements(models.StateGreeting, intent); missing != nil {
		t.Errorf("greeting requires nothing, got %v", missing)
	}
	if missing := ValidateStateRequirements(models.StateSelectingPackage, intent); len(missing) != 1 || missing[0] != models.FieldService {
		t.Errorf("selecting_package missing = %v, want [service]", missing)
	}
	if missing := ValidateStateRequirements(models.StateConfirming, intent); len(missing) != len(models.RequiredFields) {
		t.Errorf("confirming on an empty intent should miss all fields, got %v", missing)
	}
	if missing := ValidateStateRequirements(models.StateConfirming, completeIntent()); missing != nil {
		t.Errorf("confirming on a complete intent should miss nothing, got %v", missing)
	}
}

func TestSuggestStateRecovery(t *testing.T) {
	tests := []struct {
		state models.BookingState
		err   error
		want  models.BookingState
	}{
		{models.StateCollectingDetails, errors.New("fatal: session corrupt"), models.StateGreeting},
		{models.StateConfirming, errors.New("critical store outage"), models.StateGreeting},
		{models.StateCollectingDetails, errors.New("validation failed for email"), models.StateCollectingDetails},
		{models.StateConfirming, errInvalidTransition, models.StateConfirming},
		{models.StateConfirming, errors.New("missing required fields"), models.StateCollectingDetails},
		{models.StateOTPSent, errors.New("missing phone"), models.StateCollectingDetails},
		{models.StateSelectingPackage, errors.New("catalog read failed"), models.StateSelectingService},
		{models.StateGreeting, errors.New("anything"), models.StateGreeting},
	}
	for _, tt := range tests {
		if got := SuggestStateRecovery(tt.state, tt.err); got != tt.want {
			t.Errorf("SuggestStateRecovery(%s, %v) = %s, want %s", tt.state, tt.err, got, tt.want)
		}
	}
}

// Every transition any handler requests must be in the declared graph.
func TestStateGraphClosure(t *testing.T) {
	messages := []string{
		"hi", "I want to book makeup", "tell me your prices", "1", "2",
		"yes", "no", "cancel", "done", "what are your prices?",
		"asdf qwerty zxcv", "change my email address to a@gmail.com",
		"change my details", "Priya Sharma, +919876543210, priya@gmail.com",
		"123456", "resend", "15 March 2027", "bye", "restart please",
	}

	for _, from := range linearOrder {
		for _, msg := range messages {
			fsm, _, _ := newTestFSM()
			mem := models.NewConversationMemory("closure", "en")
			mem.State = from
			switch from {
			case models.StateSelectingPackage:
				mem.Intent.Service = "Bridal Makeup Services"
			case models.StateCollectingDetails:
				mem.Intent.Service = "Bridal Makeup Services"
				mem.Intent.Package = "Signature Bridal Makeup"
			case models.StateConfirming, models.StateOTPSent:
				mem.Intent = completeIntent()
			}
			intent := mem.Intent
			detected := DetectIntent(msg)
			next, _ := fsm.dispatch(context.Background(), msg, strings.ToLower(msg), detected, mem, intent, "en")
			if !CanTransition(from, next) {
				t.Errorf("state %s, message %q: handler requested illegal transition to %s", from, msg, next)
			}
		}
	}
}
