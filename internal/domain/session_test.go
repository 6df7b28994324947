package domain

import (
	"strings"
	"testing"
	"time"
)

func TestSanitizeSessionID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"abc123", "abc123"},
		{"a/b", "a_b"},
		{"a_b", "a_b"},
		{"..", "__"},
		{"one two", "one_two"},
		{"UPPER-low_9", "UPPER-low_9"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeSessionID(tc.raw); got != tc.want {
			t.Errorf("SanitizeSessionID(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFormatCommandEntryWithWorkingDir(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := FormatCommandEntry(at, "/repo", "npm run build")
	want := "[2026-01-01T00:00:00.000Z] (/repo) $ npm run build\n"
	if got != want {
		t.Fatalf("FormatCommandEntry = %q, want %q", got, want)
	}
}

func TestFormatCommandEntryWithoutWorkingDir(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := FormatCommandEntry(at, "", "ls")
	want := "[2026-01-01T00:00:00.000Z] $ ls\n"
	if got != want {
		t.Fatalf("FormatCommandEntry = %q, want %q", got, want)
	}
}

func TestFormatCommandEntryNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2026, 1, 1, 8, 0, 0, 0, loc)
	got := FormatCommandEntry(at, "", "ls")
	if !strings.HasPrefix(got, "[2026-01-01T00:00:00.000Z]") {
		t.Fatalf("expected UTC timestamp, got %q", got)
	}
}

func TestFormatOutputEntryAtLimit(t *testing.T) {
	output := strings.Repeat("x", MaxOutputLength)
	got := FormatOutputEntry(output)
	if got != output+"\n\n" {
		t.Fatalf("output at the limit must not be truncated")
	}
}

func TestFormatOutputEntryOverLimit(t *testing.T) {
	output := strings.Repeat("x", MaxOutputLength+1)
	got := FormatOutputEntry(output)
	want := strings.Repeat("x", MaxOutputLength) + TruncationSuffix + "\n\n"
	if got != want {
		t.Fatalf("expected truncation at %d chars, got len %d", MaxOutputLength, len(got))
	}
}

func TestFormatOutputEntryBlank(t *testing.T) {
	for _, output := range []string{"", "   ", "\n\t\n"} {
		got := FormatOutputEntry(output)
		if got != NoOutputPlaceholder+"\n\n" {
			t.Errorf("FormatOutputEntry(%q) = %q, want placeholder", output, got)
		}
	}
}

func TestBlockedCommandErrorMessage(t *testing.T) {
	err := &BlockedCommandError{Pattern: "go test", Message: "Use 'make test' instead."}
	want := `Command not allowed: "go test". Use 'make test' instead.`
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
