// Package normalize holds the field-cleaning helpers shared by the
// volunteer-profile and child write paths: whitespace trimming, digit-only
// phone/zip reduction, and day-precision date handling.
package normalize

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DatePolicy decides what happens when a date-like field cannot be parsed.
type DatePolicy string

const (
	// DatePassthrough keeps the raw value and leaves it to the caller to
	// log a warning. Matches the platform's lenient historical behavior.
	DatePassthrough DatePolicy = "passthrough"
	// DateReject fails the request with an error instead of persisting
	// ambiguous input.
	DateReject DatePolicy = "reject"
)

// TrimmedString trims surrounding whitespace.
func TrimmedString(value string) string {
	return strings.TrimSpace(value)
}

// DigitsOnly strips every non-digit rune from the input.
func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Zip5 strips non-digits and truncates the result to five characters.
func Zip5(value string) string {
	digits := DigitsOnly(value)
	if len(digits) > 5 {
		return digits[:5]
	}
	return digits
}

// DayPrecision truncates a timestamp to local midnight so the stored calendar
// date survives round trips regardless of server timezone.
func DayPrecision(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
}

// ParseDate parses an RFC3339 or YYYY-MM-DD date string and truncates it to
// day precision. The boolean result reports whether parsing succeeded; under
// DateReject a failure also returns an error.
func ParseDate(raw string, policy DatePolicy) (time.Time, bool, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return DayPrecision(t), true, nil
		}
	}
	if policy == DateReject {
		return time.Time{}, false, fmt.Errorf("unparseable date %q", raw)
	}
	return time.Time{}, false, nil
}

// StringList coerces loosely-typed list input from JSON bodies or forms:
// a []string passes through, a []any keeps its string members, a single
// non-empty string becomes a one-element list, anything else is empty.
func StringList(value any) []string {
	if s, ok := value.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return []string{trimmed}
		}
		return []string{}
	}
	return StringListStrict(value)
}

// StringListStrict accepts only list-shaped input: a []string passes
// through, a []any keeps its string members, anything else (including a
// bare string) coerces to an empty list.
func StringListStrict(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
