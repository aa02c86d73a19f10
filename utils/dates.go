package utils

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when normalizing heterogeneous
// work-history dates coming from profile ingestion.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"2006",
	"January 2006",
	"Jan 2006",
}

// ParseFlexibleDate normalizes the date formats seen in candidate work
// histories ("2020-01", "2020", "Jan 2020", "Present"). "Present",
// "current" and "now" resolve to the supplied now instant. A bare year
// that no layout catches resolves to mid-year. Returns false when the
// string cannot be interpreted as a date at all.
func ParseFlexibleDate(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	switch strings.ToLower(s) {
	case "present", "current", "now":
		return now, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Last resort: leading 4 digits as a year, anchored mid-year.
	if len(s) >= 4 {
		if year, err := strconv.Atoi(s[:4]); err == nil && year > 1900 && year < 2200 {
			return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// MonthsBetween returns the number of whole months from start to end,
// never less than one for a valid range.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := int(end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 1 {
		return 1
	}
	return months
}
