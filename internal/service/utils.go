package service

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// sanitizeUTF8 removes invalid UTF-8 sequences and surrounding whitespace.
// Postgres rejects invalid sequences in TEXT columns.
func sanitizeUTF8(s string) string {
	s = strings.TrimSpace(s)
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// parseMonth accepts YYYY-MM; empty means the month containing now.
func parseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, invalidf("month must be YYYY-MM")
	}
	return t, nil
}

// parseDate accepts YYYY-MM-DD; empty means today.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, invalidf("date must be YYYY-MM-DD")
	}
	return t, nil
}

func monthEnd(month time.Time) time.Time {
	return month.AddDate(0, 1, -1)
}
