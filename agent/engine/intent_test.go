package engine

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"I want to book bridal makeup", IntentBooking},
		{"book", IntentBooking},
		{"what do you offer?", IntentQuestion},
		{"how much does it cost", IntentInfo},
		{"done", IntentCompletion},
		{"bye", IntentExit},
		{"not interested", IntentExit},
		{"start over", IntentRestart},
		{"yes", IntentAffirmative},
		{"sounds good", IntentAffirmative},
		{"no", IntentNegative},
		{"asdfgh", IntentUnknown},
		{"", IntentUnknown},
	}
	for _, tt := range tests {
		if got := DetectIntent(tt.message); got.Category != tt.want {
			t.Errorf("DetectIntent(%q) = %q, want %q", tt.message, got.Category, tt.want)
		}
	}
}

// Equal scores resolve to the earliest category in priority order, so the
// classification is deterministic across runs.
func TestDetectIntentTieBreak(t *testing.T) {
	got := DetectIntent("book info")
	if got.Category != IntentBooking {
		t.Errorf("tie resolved to %q, want booking", got.Category)
	}
}

func TestDetectIntentWordBoundaries(t *testing.T) {
	// "booked" must not count as "book"; "stopped" must not count as "stop".
	if got := DetectIntent("stopped by yesterday"); got.Category == IntentExit {
		t.Errorf("substring matched across a word boundary: %q", got.Category)
	}
}

func TestIsFrustrated(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"this is useless", true},
		{"why is this not working", true},
		{"what??", true},
		{"WHY ARE you ignoring me", true},
		{"hello", false},
		{"my pin is 110001", false},
	}
	for _, tt := range tests {
		if got := IsFrustrated(tt.message); got != tt.want {
			t.Errorf("IsFrustrated(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestIsClearQuestion(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"what is the price of bridal makeup", true},
		{"do you travel to Pune?", true},
		{"can you do henna at home", true},
		{"15 march?", false}, // short data reply, not a real question
		{"ok?", false},
		{"priya@gmail.com", false},
		{"my name is Priya", false},
	}
	for _, tt := range tests {
		if got := IsClearQuestion(tt.message); got != tt.want {
			t.Errorf("IsClearQuestion(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
