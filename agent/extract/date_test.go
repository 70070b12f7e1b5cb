package extract

import (
	"testing"
	"time"
)

// fixedNow is a Sunday morning, 1 March 2026.
func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
}

func TestDateExtract(t *testing.T) {
	e := DateExtractor{Now: fixedNow}

	tests := []struct {
		name          string
		message       string
		wantValue     string
		wantMethod    string
		wantConf      string
		wantNeedsYear bool
	}{
		{"iso", "I prefer 2026-04-15", "2026-04-15", "iso", "high", false},
		{"day month year", "15 March 2026 works", "2026-03-15", "month_name_year", "high", false},
		{"month day year", "March 15, 2026", "2026-03-15", "month_name_year", "high", false},
		{"ordinal with of", "on the 3rd of April 2026", "2026-04-03", "month_name_year", "high", false},
		{"compact", "15/04/2026", "2026-04-15", "compact", "high", false},
		{"compact short year", "15-04-26", "2026-04-15", "compact", "high", false},
		{"tomorrow", "tomorrow please", "2026-03-02", "relative", "very_high", false},
		{"day after tomorrow", "day after tomorrow", "2026-03-03", "relative", "very_high", false},
		{"in n days", "in 10 days", "2026-03-11", "relative", "very_high", false},
		{"weekday", "this friday", "2026-03-06", "weekday", "very_high", false},
		{"partial future", "15 March", "2026-03-15", "partial", "medium", true},
		{"partial rolls forward", "5 January", "2027-01-05", "partial", "medium", true},
		{"numeric day month", "15/3", "2026-03-15", "numeric_day_month", "medium", true},
		{"year month", "sometime in March 2027", "2027-03-01", "year_month", "high", false},
		{"explicit past year kept", "15 March 2020", "2020-03-15", "month_name_year", "high", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, ok := e.Extract(tt.message, nil)
			if !ok {
				t.Fatalf("Extract(%q) found nothing", tt.message)
			}
			if cand.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", cand.Value, tt.wantValue)
			}
			if cand.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", cand.Method, tt.wantMethod)
			}
			if string(cand.Confidence) != tt.wantConf {
				t.Errorf("confidence = %q, want %q", cand.Confidence, tt.wantConf)
			}
			needsYear := cand.DateMeta != nil && cand.DateMeta.NeedsYear
			if needsYear != tt.wantNeedsYear {
				t.Errorf("needsYear = %v, want %v", needsYear, tt.wantNeedsYear)
			}
		})
	}
}

func TestDateExtractNoMatch(t *testing.T) {
	e := DateExtractor{Now: fixedNow}
	for _, msg := range []string{"no date here", "32/13/2026", "maybe later"} {
		if cand, ok := e.Extract(msg, nil); ok {
			t.Errorf("Extract(%q) = %q, want no match", msg, cand.Value)
		}
	}
}

func TestDateUserProvidedYear(t *testing.T) {
	e := DateExtractor{Now: fixedNow}
	cand, ok := e.Extract("15 March 2026", nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if cand.DateMeta == nil || cand.DateMeta.UserProvidedYear != 2026 {
		t.Errorf("userProvidedYear = %+v, want 2026", cand.DateMeta)
	}
}

func TestExtractYear(t *testing.T) {
	if y, ok := ExtractYear("probably 2027"); !ok || y != 2027 {
		t.Errorf("ExtractYear = %d, %v, want 2027, true", y, ok)
	}
	for _, msg := range []string{"1999", "215", "none"} {
		if y, ok := ExtractYear(msg); ok {
			t.Errorf("ExtractYear(%q) = %d, want no match", msg, y)
		}
	}
}

func TestApplyYear(t *testing.T) {
	got, err := ApplyYear("2026-03-15", 2027)
	if err != nil {
		t.Fatalf("ApplyYear: %v", err)
	}
	if got != "2027-03-15" {
		t.Errorf("ApplyYear = %q, want 2027-03-15", got)
	}
	if _, err := ApplyYear("not-a-date", 2027); err == nil {
		t.Error("ApplyYear should reject malformed input")
	}
}
