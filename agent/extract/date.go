package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"glambook/models"
)

var monthNumbers = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdays = []struct {
	Name string
	Day  time.Weekday
	Re   *regexp.Regexp
}{
	{"monday", time.Monday, regexp.MustCompile(`\bmonday\b`)},
	{"tuesday", time.Tuesday, regexp.MustCompile(`\btuesday\b`)},
	{"wednesday", time.Wednesday, regexp.MustCompile(`\bwednesday\b`)},
	{"thursday", time.Thursday, regexp.MustCompile(`\bthursday\b`)},
	{"friday", time.Friday, regexp.MustCompile(`\bfriday\b`)},
	{"saturday", time.Saturday, regexp.MustCompile(`\bsaturday\b`)},
	{"sunday", time.Sunday, regexp.MustCompile(`\bsunday\b`)},
}

const monthAlt = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	dateISO       = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dateMonthYear = regexp.MustCompile(`(?i)\b(?:(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlt + `)|(` + monthAlt + `)\s+(\d{1,2})(?:st|nd|rd|th)?,?)\s+(\d{4})\b`)
	dateCompact   = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})\b`)
	dateNumericMY = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})\b`)
	datePartial   = regexp.MustCompile(`(?i)\b(?:(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlt + `)|(` + monthAlt + `)\s+(\d{1,2})(?:st|nd|rd|th)?)\b`)
	dateYearMonth = regexp.MustCompile(`(?i)\b(` + monthAlt + `)\s+(\d{4})\b`)
	dateInDays    = regexp.MustCompile(`(?i)\bin\s+(\d{1,3})\s+days?\b`)
	bareYear      = regexp.MustCompile(`\b(20\d{2}|2100)\b`)
)

// DateExtractor resolves dates to YYYY-MM-DD. Strategies run as a ladder;
// the first match wins. Now is injectable for deterministic tests.
type DateExtractor struct {
	Now func() time.Time
}

func (e DateExtractor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (DateExtractor) Field() string { return models.FieldDate }

func (e DateExtractor) Extract(message string, history []string) (models.Candidate, bool) {
	message = cleanMessage(message)
	msgLower := strings.ToLower(message)
	now := e.now()

	type strategy struct {
		name string
		fn   func() (time.Time, *models.DateInfo, bool)
	}
	ladder := []strategy{
		{"iso", func() (time.Time, *models.DateInfo, bool) { return e.tryISO(message) }},
		{"month_name_year", func() (time.Time, *models.DateInfo, bool) { return e.tryMonthYear(message) }},
		{"compact", func() (time.Time, *models.DateInfo, bool) { return e.tryCompact(message, now) }},
		{"relative", func() (time.Time, *models.DateInfo, bool) { return e.tryRelative(msgLower, now) }},
		{"weekday", func() (time.Time, *models.DateInfo, bool) { return e.tryWeekday(msgLower, now) }},
		{"partial", func() (time.Time, *models.DateInfo, bool) { return e.tryPartial(message, now) }},
		{"numeric_day_month", func() (time.Time, *models.DateInfo, bool) { return e.tryNumericDayMonth(msgLower, now) }},
		{"year_month", func() (time.Time, *models.DateInfo, bool) { return e.tryYearMonth(message) }},
	}

	for _, s := range ladder {
		if t, info, ok := s.fn(); ok {
			conf := models.ConfidenceHigh
			if info != nil && info.NeedsYear {
				conf = models.ConfidenceMedium
			}
			if s.name == "weekday" || s.name == "relative" {
				conf = models.ConfidenceVeryHigh
			}
			raw := ""
			if info != nil {
				raw = info.Original
			}
			return models.Candidate{
				Field:      models.FieldDate,
				Value:      t.Format("2006-01-02"),
				Confidence: conf,
				Method:     s.name,
				Raw:        raw,
				DateMeta:   info,
			}, true
		}
	}
	return models.Candidate{}, false
}

func (e DateExtractor) tryISO(msg string) (time.Time, *models.DateInfo, bool) {
	m := dateISO.FindStringSubmatch(msg)
	if m == nil {
		return time.Time{}, nil, false
	}
	t, err := time.Parse("2006-01-02", m[0])
	if err != nil {
		return time.Time{}, nil, false
	}
	return t, &models.DateInfo{Original: m[0]}, true
}

// tryMonthYear handles "15 March 2026", "15th of March 2026" and
// "March 15, 2026". An explicit year is always respected, even in the past.
func (e DateExtractor) tryMonthYear(msg string) (time.Time, *models.DateInfo, bool) {
	m := dateMonthYear.FindStringSubmatch(msg)
	if m == nil {
		return time.Time{}, nil, false
	}
	var dayStr, monStr string
	if m[1] != "" {
		dayStr, monStr = m[1], m[2]
	} else {
		monStr, dayStr = m[3], m[4]
	}
	day, _ := strconv.Atoi(dayStr)
	year, _ := strconv.Atoi(m[5])
	mon, ok := monthNumbers[strings.ToLower(monStr)]
	if !ok || !validDay(day, mon, year) {
		return time.Time{}, nil, false
	}
	t := time.Date(year, mon, day, 0, 0, 0, 0, time.UTC)
	return t, &models.DateInfo{Original: m[0], UserProvidedYear: year}, true
}

// tryCompact handles 15/03/2026 and 15-03-26, day first. Two-digit years
// resolve into the 2000s.
func (e DateExtractor) tryCompact(msg string, now time.Time) (time.Time, *models.DateInfo, bool) {
	m := dateCompact.FindStringSubmatch(msg)
	if m == nil {
		return time.Time{}, nil, false
	}
	day, _ := strconv.Atoi(m[1])
	mon, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if mon > 12 && day <= 12 {
		day, mon = mon, day // tolerate month-first entry
	}
	if mon < 1 || mon > 12 || !validDay(day, time.Month(mon), year) {
		return time.Time{}, nil, false
	}
	t := time.Date(year, time.Month(mon), day, 0, 0, 0, 0, time.UTC)
	return t, &models.DateInfo{Original: m[0], UserProvidedYear: year}, true
}

func (e DateExtractor) tryRelative(msgLower string, now time.Time) (time.Time, *models.DateInfo, bool) {
	day := now.Truncate(24 * time.Hour)
	switch {
	case strings.Contains(msgLower, "day after tomorrow"):
		return day.AddDate(0, 0, 2), &models.DateInfo{Original: "day after tomorrow"}, true
	case strings.Contains(msgLower, "tomorrow"):
		return day.AddDate(0, 0, 1), &models.DateInfo{Original: "tomorrow"}, true
	case strings.Contains(msgLower, "today"):
		return day, &models.DateInfo{Original: "today"}, true
	case strings.Contains(msgLower, "next week"):
		return day.AddDate(0, 0, 7), &models.DateInfo{Original: "next week"}, true
	case strings.Contains(msgLower, "next month"):
		return day.AddDate(0, 1, 0), &models.DateInfo{Original: "next month"}, true
	}
	if m := dateInDays.FindStringSubmatch(msgLower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return day.AddDate(0, 0, n), &models.DateInfo{Original: m[0]}, true
	}
	return time.Time{}, nil, false
}

// tryWeekday handles "friday" / "next friday" / "this saturday", always
// resolving to a future date.
func (e DateExtractor) tryWeekday(msgLower string, now time.Time) (time.Time, *models.DateInfo, bool) {
	for _, wd := range weekdays {
		if !wd.Re.MatchString(msgLower) {
			continue
		}
		day := now.Truncate(24 * time.Hour)
		ahead := (int(wd.Day) - int(day.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		if strings.Contains(msgLower, "next "+wd.Name) && ahead <= 3 {
			ahead += 7
		}
		return day.AddDate(0, 0, ahead), &models.DateInfo{Original: wd.Name}, true
	}
	return time.Time{}, nil, false
}

// tryPartial handles day+month with no year ("15 March"): the nearest
// future occurrence is assumed and NeedsYear is set so the conversation
// can confirm.
func (e DateExtractor) tryPartial(msg string, now time.Time) (time.Time, *models.DateInfo, bool) {
	m := datePartial.FindStringSubmatch(msg)
	if m == nil {
		return time.Time{}, nil, false
	}
	var dayStr, monStr string
	if m[1] != "" {
		dayStr, monStr = m[1], m[2]
	} else {
		monStr, dayStr = m[3], m[4]
	}
	day, _ := strconv.Atoi(dayStr)
	mon, ok := monthNumbers[strings.ToLower(monStr)]
	if !ok || !validDay(day, mon, now.Year()) {
		return time.Time{}, nil, false
	}
	t := time.Date(now.Year(), mon, day, 0, 0, 0, 0, time.UTC)
	if t.Before(now) {
		t = t.AddDate(1, 0, 0)
	}
	return t, &models.DateInfo{Original: m[0], NeedsYear: true}, true
}

// tryNumericDayMonth handles "15/3" with no year, same future-year rule.
func (e DateExtractor) tryNumericDayMonth(msgLower string, now time.Time) (time.Time, *models.DateInfo, bool) {
	m := dateNumericMY.FindStringSubmatch(msgLower)
	if m == nil {
		return time.Time{}, nil, false
	}
	day, _ := strconv.Atoi(m[1])
	mon, _ := strconv.Atoi(m[2])
	if mon > 12 && day <= 12 {
		day, mon = mon, day
	}
	if mon < 1 || mon > 12 || !validDay(day, time.Month(mon), now.Year()) {
		return time.Time{}, nil, false
	}
	t := time.Date(now.Year(), time.Month(mon), day, 0, 0, 0, 0, time.UTC)
	if t.Before(now) {
		t = t.AddDate(1, 0, 0)
	}
	return t, &models.DateInfo{Original: m[0], NeedsYear: true}, true
}

// tryYearMonth handles "March 2026": first day of the month.
func (e DateExtractor) tryYearMonth(msg string) (time.Time, *models.DateInfo, bool) {
	m := dateYearMonth.FindStringSubmatch(msg)
	if m == nil {
		return time.Time{}, nil, false
	}
	mon, ok := monthNumbers[strings.ToLower(m[1])]
	if !ok {
		return time.Time{}, nil, false
	}
	year, _ := strconv.Atoi(m[2])
	t := time.Date(year, mon, 1, 0, 0, 0, 0, time.UTC)
	return t, &models.DateInfo{Original: m[0], UserProvidedYear: year}, true
}

func validDay(day int, mon time.Month, year int) bool {
	if day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, mon, day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && t.Month() == mon
}

// ExtractYear pulls a bare four-digit year in [2020, 2100] from a message,
// for the year clarification sub-flow.
func ExtractYear(message string) (int, bool) {
	m := bareYear.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	year, _ := strconv.Atoi(m[1])
	if year < 2020 || year > 2100 {
		return 0, false
	}
	return year, true
}

// ApplyYear rewrites the year of a stored YYYY-MM-DD date.
func ApplyYear(date string, year int) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid stored date %q: %w", date, err)
	}
	return t.AddDate(year-t.Year(), 0, 0).Format("2006-01-02"), nil
}
