package extract

import "testing"

func TestAddressExtract(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantValue  string
		wantConf   string
		wantMethod string
	}{
		{"indicator", "my address is 12 MG Road, Andheri West", "12 MG Road, Andheri West", "high", "indicator"},
		{"live at", "I live at Flat 4B, Thamel", "Flat 4B, Thamel", "high", "indicator"},
		{"street pattern", "12 MG Road Mumbai", "12 MG Road Mumbai", "medium", "street_pattern"},
		{"bare city reply", "Delhi", "Delhi", "medium", "location"},
		{"locality before city", "Kalanki, Kathmandu", "Kalanki, Kathmandu", "medium", "location"},
		{"city then country", "Kathmandu Nepal", "Kathmandu, Nepal", "medium", "location"},
		{"suffix fallback", "near the big temple area", "near the big temple area", "low", "plausible"},
		{"comma fallback", "House 12, Main Bazaar", "House 12, Main Bazaar", "low", "plausible"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, ok := AddressExtractor{}.Extract(tt.message, nil)
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

func TestAddressExtractNoMatch(t *testing.T) {
	for _, msg := range []string{
		"yes, that works",
		"ok",
		"9876543210",
		"what is your price",
		"My , phone is , email is",
		"a@gmail.com",
		"",
	} {
		if cand, ok := (AddressExtractor{}).Extract(msg, nil); ok {
			t.Errorf("Extract(%q) = %q, want no match", msg, cand.Value)
		}
	}
}

func TestTidyAddress(t *testing.T) {
	if got, ok := tidyAddress("12 MG Road, Mumbai, 400001"); !ok || got != "12 MG Road, Mumbai" {
		t.Errorf("trailing pincode should be stripped, got %q (%v)", got, ok)
	}
	if _, ok := tidyAddress("110001"); ok {
		t.Error("a bare digit run is not an address")
	}
	if _, ok := tidyAddress("ab"); ok {
		t.Error("too-short fragments are rejected")
	}
}
