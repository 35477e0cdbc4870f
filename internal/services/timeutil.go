package services

import (
	"fmt"
	"strconv"
	"time"
)

// MinutesPerDay is the span of the daily timeline.
const MinutesPerDay = 24 * 60

const dateLayout = "2006-01-02"

// MinutesOfDay parses a canonical 24h HH:MM string into minutes since
// midnight. The fixed-width form is required so times round-trip exactly
// and lexicographic ordering matches chronological ordering.
func MinutesOfDay(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return h*60 + m, nil
}

// ParseDate parses a canonical YYYY-MM-DD calendar date. Non-canonical
// spellings that time.Parse would accept (e.g. out-of-range days rolled
// over) are rejected by the round-trip check.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	if t.Format(dateLayout) != s {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDateTime parses the datetime strings carried by tasks and exams.
// The browser's datetime-local inputs produce minute-precision values
// without a zone; full RFC 3339 and bare dates are accepted too.
func parseDateTime(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		dateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
