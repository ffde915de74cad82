package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParsePrice extracts a numeric value from a raw price string.
// Currency symbols, thousands separators and any other non-numeric
// characters are stripped before conversion.
// Examples:
//   "$1,234.50" → 1234.50
//   "US$89"     → 89
//   "N/A"       → not ok
// Returns false for empty or unconvertible input; a bad price drops the
// record downstream rather than failing the run.
func ParsePrice(raw string) (float64, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}

	val, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// ParseEventDate parses a month-abbreviation-plus-day string like
// "Dec 24" into a calendar date in referenceYear. Anything that is not
// exactly two tokens, or that names an impossible date, returns false.
func ParseEventDate(raw string, referenceYear int) (time.Time, bool) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return time.Time{}, false
	}

	t, err := time.Parse("Jan 2 2006", fmt.Sprintf("%s %s %d", fields[0], fields[1], referenceYear))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RolloverEventDate applies the month-rollover correction: an event
// whose month precedes the current month is assumed to belong to next
// year (e.g. a January event scraped in December). Only applied when
// EVENT_YEAR_ROLLOVER is enabled; the default pipeline keeps the
// reference year verbatim, matching the snapshot producers.
func RolloverEventDate(d time.Time, now time.Time) time.Time {
	if d.Month() < now.Month() {
		return d.AddDate(1, 0, 0)
	}
	return d
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
