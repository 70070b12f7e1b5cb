package extract

import "testing"

func TestPincodeExtract(t *testing.T) {
	tests := []struct {
		name       string
		country    string
		message    string
		wantValue  string
		wantMethod string
		wantFound  bool
	}{
		{"indicator", "", "pincode is 110001", "110001", "indicator", true},
		{"indicator zip", "India", "zip: 400001", "400001", "indicator", true},
		{"bare nepal length", "Nepal", "44600", "44600", "pattern", true},
		{"bare no country", "", "my area is 1207", "1207", "pattern", true},
		{"wrong length for country", "India", "4000", "", "", false},
		{"india cannot start with 9", "India", "910001", "", "", false},
		{"year skipped", "", "2026", "", "", false},
		{"no digits", "", "somewhere nice", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, ok := PincodeExtractor{Country: tt.country}.Extract(tt.message, nil)
			if ok != tt.wantFound {
				t.Fatalf("found = %v, want %v (cand %q)", ok, tt.wantFound, cand.Value)
			}
			if !ok {
				return
			}
			if cand.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", cand.Value, tt.wantValue)
			}
			if cand.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", cand.Method, tt.wantMethod)
			}
		})
	}
}

func TestPincodeCountry(t *testing.T) {
	tests := map[string]string{
		"110001": "India",
		"1207":   "Bangladesh",
		"44600":  "", // five digits are ambiguous
		"910001": "",
	}
	for code, want := range tests {
		if got := PincodeCountry(code); got != want {
			t.Errorf("PincodeCountry(%q) = %q, want %q", code, got, want)
		}
	}
}
