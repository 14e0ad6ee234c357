package normalize

import (
	"testing"
	"time"
)

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(405) 555-0134", "4055550134"},
		{"+1 405 555 0134", "14055550134"},
		{"no digits", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DigitsOnly(tt.input); got != tt.want {
			t.Fatalf("DigitsOnly(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestZip5Truncates(t *testing.T) {
	if got := Zip5("73102-4321"); got != "73102" {
		t.Fatalf("expected 73102, got %q", got)
	}
	if got := Zip5("731"); got != "731" {
		t.Fatalf("short zips pass through, got %q", got)
	}
}

func TestParseDateKeepsCalendarDate(t *testing.T) {
	parsed, ok, err := ParseDate("2015-06-09", DatePassthrough)
	if err != nil || !ok {
		t.Fatalf("expected parse success, ok=%v err=%v", ok, err)
	}
	if parsed.Year() != 2015 || parsed.Month() != time.June || parsed.Day() != 9 {
		t.Fatalf("calendar date drifted: %v", parsed)
	}
	if parsed.Hour() != 0 || parsed.Minute() != 0 {
		t.Fatalf("expected local midnight, got %v", parsed)
	}
}

func TestParseDateAcceptsRFC3339(t *testing.T) {
	parsed, ok, err := ParseDate("2015-06-09T18:30:00Z", DatePassthrough)
	if err != nil || !ok {
		t.Fatalf("expected parse success, ok=%v err=%v", ok, err)
	}
	if parsed.Hour() != 0 {
		t.Fatalf("expected day precision, got %v", parsed)
	}
}

func TestParseDatePassthroughSignalsFailureWithoutError(t *testing.T) {
	_, ok, err := ParseDate("not-a-date", DatePassthrough)
	if ok {
		t.Fatal("expected parse failure")
	}
	if err != nil {
		t.Fatalf("passthrough should not error, got %v", err)
	}
}

func TestParseDateRejectReturnsError(t *testing.T) {
	_, ok, err := ParseDate("not-a-date", DateReject)
	if ok {
		t.Fatal("expected parse failure")
	}
	if err == nil {
		t.Fatal("reject policy should surface an error")
	}
}

func TestDayPrecision(t *testing.T) {
	in := time.Date(2020, 3, 14, 23, 59, 58, 123, time.Local)
	got := DayPrecision(in)
	if got.Year() != 2020 || got.Month() != time.March || got.Day() != 14 {
		t.Fatalf("calendar date changed: %v", got)
	}
	if got.Hour() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight truncation, got %v", got)
	}
}

func TestStringList(t *testing.T) {
	if got := StringList([]string{"a", "b"}); len(got) != 2 {
		t.Fatalf("slice should pass through, got %v", got)
	}
	if got := StringList([]any{"a", 1, "b"}); len(got) != 2 {
		t.Fatalf("expected non-strings dropped, got %v", got)
	}
	if got := StringList("tutoring"); len(got) != 1 || got[0] != "tutoring" {
		t.Fatalf("single value should wrap, got %v", got)
	}
	if got := StringList("   "); len(got) != 0 {
		t.Fatalf("blank string should coerce empty, got %v", got)
	}
	if got := StringList(42); len(got) != 0 {
		t.Fatalf("unknown types should coerce empty, got %v", got)
	}
}

func TestStringListStrict(t *testing.T) {
	if got := StringListStrict([]string{"a", "b"}); len(got) != 2 {
		t.Fatalf("slice should pass through, got %v", got)
	}
	if got := StringListStrict([]any{"a", 1, "b"}); len(got) != 2 {
		t.Fatalf("expected non-strings dropped, got %v", got)
	}
	if got := StringListStrict("cooking"); len(got) != 0 {
		t.Fatalf("bare string should coerce empty, got %v", got)
	}
	if got := StringListStrict(nil); len(got) != 0 {
		t.Fatalf("nil should coerce empty, got %v", got)
	}
}
