package domain

import (
	"fmt"
	"strings"
	"time"
)

// SanitizeSessionID maps a raw session id onto a file-name-safe string using
// only [A-Za-z0-9_-]; every other rune becomes an underscore.
//
// Distinct raw ids can collide after sanitization ("a/b" and "a_b" both map to
// "a_b"); colliding sessions silently share a log file.
func SanitizeSessionID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// FormatCommandEntry renders the session log line written before a command
// runs. The working directory is omitted when none was supplied.
func FormatCommandEntry(at time.Time, workingDir, command string) string {
	stamp := at.UTC().Format(LogTimestampFormat)
	if workingDir == "" {
		return fmt.Sprintf("[%s] $ %s\n", stamp, command)
	}
	return fmt.Sprintf("[%s] (%s) $ %s\n", stamp, workingDir, command)
}

// FormatOutputEntry renders the output block appended after a command
// finishes: truncated at MaxOutputLength, a placeholder for blank output, and
// always followed by a blank separator line.
func FormatOutputEntry(output string) string {
	if strings.TrimSpace(output) == "" {
		return NoOutputPlaceholder + "\n\n"
	}
	if len(output) > MaxOutputLength {
		output = output[:MaxOutputLength] + TruncationSuffix
	}
	return output + "\n\n"
}
