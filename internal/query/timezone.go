package query

import (
	"os"
	"time"
)

// DisplayTimezoneEnv is the environment variable selecting the display
// timezone for calendar-day comparisons.
const DisplayTimezoneEnv = "TICKTICK_DISPLAY_TIMEZONE"

// LocalSentinel is the reserved display-timezone value meaning "use
// host-local time, no override".
const LocalSentinel = "Local"

// Resolver determines the timezone used to interpret a task's due date
// for calendar-day comparisons.
//
// Resolution order: the task's own timezone field, then the configured
// display timezone, then the host's local timezone. Each step that
// fails (unknown zone name, missing tz database entry) falls through
// silently; resolution never fails outright.
type Resolver struct {
	display string
}

// NewResolver creates a Resolver with the given display timezone.
// Empty or the LocalSentinel value means no override.
func NewResolver(display string) *Resolver {
	return &Resolver{display: display}
}

// NewResolverFromEnv creates a Resolver configured from the
// TICKTICK_DISPLAY_TIMEZONE environment variable.
func NewResolverFromEnv() *Resolver {
	return NewResolver(os.Getenv(DisplayTimezoneEnv))
}

// Display returns the configured display timezone, or the empty string
// when host-local time is in effect.
func (r *Resolver) Display() string {
	if r.display == "" || r.display == LocalSentinel {
		return ""
	}
	return r.display
}

// Location resolves the timezone for a task scheduled in taskZone
// (which may be empty).
func (r *Resolver) Location(taskZone string) *time.Location {
	if taskZone != "" {
		if loc, err := time.LoadLocation(taskZone); err == nil {
			return loc
		}
	}

	if display := r.Display(); display != "" {
		if loc, err := time.LoadLocation(display); err == nil {
			return loc
		}
	}

	return time.Local
}
