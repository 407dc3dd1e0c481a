package registry

import (
	"strings"
	"time"
)

const (
	minuteLayout   = "2006-01-02T15:04"
	fallbackLayout = "2006-01-02 15:04"
)

// parseDate parses a minute-precision ISO-8601-like date string. A trailing
// UTC marker is stripped and longer RFC3339 strings are truncated to minute
// precision. "YYYY-MM-DD HH:MM" is accepted as a fallback. The second return
// is false when the string is empty or unparseable.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	iso := strings.TrimSuffix(s, "Z")
	if len(iso) > len(minuteLayout) {
		iso = iso[:len(minuteLayout)]
	}
	if t, err := time.Parse(minuteLayout, iso); err == nil {
		return t, true
	}
	if t, err := time.Parse(fallbackLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// formatMinute renders t at minute precision in UTC.
func formatMinute(t time.Time) string {
	return t.UTC().Format(minuteLayout)
}

// truncateMinute cuts a caller-supplied date string to minute precision.
func truncateMinute(s string) string {
	if len(s) > len(minuteLayout) {
		return s[:len(minuteLayout)]
	}
	return s
}
