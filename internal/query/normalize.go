package query

import (
	"regexp"
	"strings"
	"time"
)

// colonlessOffset matches a trailing UTC offset without a colon, e.g.
// "+0000" or "-0530".
var colonlessOffset = regexp.MustCompile(`([+-])(\d{2})(\d{2})$`)

// NormalizeISODate canonicalizes a date-time string into the
// offset-with-colon ISO-8601 form ("2019-11-13T03:00:00+00:00").
//
// It handles the encodings the TickTick API emits: a trailing "Z"
// becomes "+00:00" and a colonless offset ("+0000") gains a colon.
// Strings that are already canonical, empty, or carry no recognizable
// offset are returned unchanged. The function is idempotent and never
// fails.
func NormalizeISODate(s string) string {
	if s == "" {
		return s
	}

	normalized := strings.ReplaceAll(s, "Z", "+00:00")
	return colonlessOffset.ReplaceAllString(normalized, "$1$2:$3")
}

// ParseDue normalizes a due-date string and parses it as an absolute
// instant. The second return value is false when the string is empty or
// does not parse; callers treat such tasks as having no due date.
func ParseDue(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, NormalizeISODate(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
