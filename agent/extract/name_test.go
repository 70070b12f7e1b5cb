package extract

import "testing"

func TestNameExtract(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantValue  string
		wantConf   string
		wantMethod string
	}{
		{"my name is", "My name is Priya Sharma", "Priya Sharma", "very_high", "template"},
		{"name colon", "name: rupesh", "Rupesh", "very_high", "template"},
		{"i am", "I am Anjali Mehta", "Anjali Mehta", "very_high", "template"},
		{"contraction", "I'm Rahul", "Rahul", "very_high", "template"},
		{"stopword cuts capture", "My name is Priya from Mumbai", "Priya", "very_high", "template"},
		{"capitalized run", "Priya Sharma here for the wedding", "Priya Sharma", "medium", "capitalized"},
		{"bare reply", "priya", "Priya", "low", "bare_reply"},
		{"bare two words", "rupesh karki", "Rupesh Karki", "low", "bare_reply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, ok := NameExtractor{}.Extract(tt.message, nil)
			if !ok {
				t.Fatalf("Extract(%q) found nothing", tt.message)
			}
			if cand.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", cand.Value, tt.wantValue)
			}
			if string(cand.Confidence) != tt.wantConf {
				t.Errorf("confidence = %q, want %q", cand.Confidence, tt.wantConf)
			}
			if cand.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", cand.Method, tt.wantMethod)
			}
		})
	}
}

func TestNameExtractNoMatch(t *testing.T) {
	for _, msg := range []string{
		"I want to book bridal makeup",
		"yes please",
		"ok",
		"9876543210",
		"",
	} {
		if cand, ok := (NameExtractor{}).Extract(msg, nil); ok {
			t.Errorf("Extract(%q) = %q, want no match", msg, cand.Value)
		}
	}
}
