package query

import (
	"fmt"
	"strings"

	"github.com/tickdo/tickdo/internal/ticktick"
)

// DateFilter selects a due-date criterion for a query.
type DateFilter string

// Recognized date filters. The empty value means "no date filter".
const (
	DateFilterNone     DateFilter = ""
	DateFilterToday    DateFilter = "today"
	DateFilterTomorrow DateFilter = "tomorrow"
	DateFilterOverdue  DateFilter = "overdue"
	DateFilterNext7    DateFilter = "next_7_days"
	DateFilterCustom   DateFilter = "custom"
	DateFilterEngaged  DateFilter = "engaged"
	DateFilterNext     DateFilter = "next"
)

// ValidationError reports a malformed query specification. It is
// surfaced to the caller before any store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Spec describes a task query. All criteria are optional and combine
// with AND; the zero Spec matches every task.
type Spec struct {
	// TaskID restricts matches to a single task ID. Together with
	// ProjectID it selects a direct lookup instead of a scan.
	TaskID string

	// ProjectID restricts the scan to one project. The value "inbox"
	// selects the synthetic inbox collection.
	ProjectID string

	// DateFilter selects a due-date criterion.
	DateFilter DateFilter

	// CustomDays is the day offset for DateFilterCustom. It must be set
	// exactly when DateFilter is "custom".
	CustomDays *int

	// Priority restricts matches to one priority level (0, 1, 3, 5).
	Priority *int

	// SearchTerm restricts matches to tasks containing the term in
	// their title, content, or subtask titles (case-insensitive).
	SearchTerm string
}

// IsEmpty reports whether the spec carries no filtering criteria.
func (s Spec) IsEmpty() bool {
	return s.TaskID == "" && s.DateFilter == DateFilterNone &&
		s.Priority == nil && s.SearchTerm == ""
}

// Scope returns the execution scope the spec's identifiers select: a
// direct lookup needs both task and project ID; a project ID alone
// scans that project; anything else scans globally. A task ID without a
// project ID is a global scan filtered by ID.
func (s Spec) Scope() Scope {
	switch {
	case s.TaskID != "" && s.ProjectID != "":
		return ScopeTask
	case s.ProjectID != "":
		return ScopeProject
	default:
		return ScopeGlobal
	}
}

// Validate checks the spec against the recognized parameter domains.
// It returns a *ValidationError describing the first problem found.
func (s Spec) Validate() error {
	switch s.DateFilter {
	case DateFilterNone, DateFilterToday, DateFilterTomorrow, DateFilterOverdue,
		DateFilterNext7, DateFilterEngaged, DateFilterNext:
		if s.CustomDays != nil {
			return &ValidationError{
				Field:  "custom_days",
				Reason: `only valid with date_filter "custom"`,
			}
		}
	case DateFilterCustom:
		if s.CustomDays == nil {
			return &ValidationError{
				Field:  "custom_days",
				Reason: `required when date_filter is "custom"`,
			}
		}
		if *s.CustomDays < 0 {
			return &ValidationError{
				Field:  "custom_days",
				Reason: fmt.Sprintf("must be a non-negative integer, got %d", *s.CustomDays),
			}
		}
	default:
		return &ValidationError{
			Field:  "date_filter",
			Reason: fmt.Sprintf("unrecognized value %q (valid: today, tomorrow, overdue, next_7_days, custom, engaged, next)", s.DateFilter),
		}
	}

	if s.Priority != nil && !ticktick.ValidPriority(*s.Priority) {
		return &ValidationError{
			Field:  "priority",
			Reason: fmt.Sprintf("must be 0 (None), 1 (Low), 3 (Medium), or 5 (High), got %d", *s.Priority),
		}
	}

	if s.SearchTerm != "" && strings.TrimSpace(s.SearchTerm) == "" {
		return &ValidationError{
			Field:  "search_term",
			Reason: "cannot be blank",
		}
	}

	return nil
}

// criterion is one named, independently checkable filter. Direct
// lookups use the names to report which criterion rejected a task.
type criterion struct {
	name string
	pred Predicate
}

// criteria returns the spec's active criteria in evaluation order.
// The spec must already be validated.
func (s Spec) criteria(c *Classifier) []criterion {
	var cs []criterion

	if s.TaskID != "" {
		cs = append(cs, criterion{
			name: fmt.Sprintf("task ID %q", s.TaskID),
			pred: HasID(s.TaskID),
		})
	}

	if s.DateFilter != DateFilterNone {
		cs = append(cs, criterion{
			name: fmt.Sprintf("date filter %q", s.DateFilter),
			pred: s.datePredicate(c),
		})
	}

	if s.Priority != nil {
		cs = append(cs, criterion{
			name: fmt.Sprintf("priority %s", ticktick.PriorityName(*s.Priority)),
			pred: HasPriority(*s.Priority),
		})
	}

	if s.SearchTerm != "" {
		cs = append(cs, criterion{
			name: fmt.Sprintf("search term %q", s.SearchTerm),
			pred: MatchesSearch(s.SearchTerm),
		})
	}

	return cs
}

// datePredicate maps the date filter to its predicate. The named
// presets use OR internally but still combine with the other criteria
// via AND at the outer level.
func (s Spec) datePredicate(c *Classifier) Predicate {
	switch s.DateFilter {
	case DateFilterToday:
		return c.DueToday
	case DateFilterTomorrow:
		return DueInDays(c, 1)
	case DateFilterOverdue:
		return c.Overdue
	case DateFilterNext7:
		return DueWithinNextDays(c, 7)
	case DateFilterCustom:
		return DueInDays(c, *s.CustomDays)
	case DateFilterEngaged:
		return Engaged(c)
	case DateFilterNext:
		return Next(c)
	}
	return All
}

// Predicate builds the combined predicate for the spec. The spec must
// already be validated; an empty spec matches every task.
func (s Spec) Predicate(c *Classifier) Predicate {
	cs := s.criteria(c)
	ps := make([]Predicate, len(cs))
	for i, cr := range cs {
		ps[i] = cr.pred
	}
	return And(ps...)
}

// Description returns a human-readable description of the active filter
// combination, e.g. `due today, priority High, matching "bug"`.
func (s Spec) Description() string {
	if s.IsEmpty() {
		return "included"
	}

	var parts []string

	if s.TaskID != "" {
		parts = append(parts, fmt.Sprintf("task %s", s.TaskID))
	}

	switch s.DateFilter {
	case DateFilterToday:
		parts = append(parts, "due today")
	case DateFilterTomorrow:
		parts = append(parts, "due tomorrow")
	case DateFilterOverdue:
		parts = append(parts, "overdue")
	case DateFilterNext7:
		parts = append(parts, "due in the next 7 days")
	case DateFilterCustom:
		days := *s.CustomDays
		switch days {
		case 0:
			parts = append(parts, "due today")
		case 1:
			parts = append(parts, "due in 1 day")
		default:
			parts = append(parts, fmt.Sprintf("due in %d days", days))
		}
	case DateFilterEngaged:
		parts = append(parts, "engaged (high priority, due today, or overdue)")
	case DateFilterNext:
		parts = append(parts, "next (medium priority or due tomorrow)")
	}

	if s.Priority != nil {
		parts = append(parts, fmt.Sprintf("priority %s", ticktick.PriorityName(*s.Priority)))
	}

	if s.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("matching %q", s.SearchTerm))
	}

	return strings.Join(parts, ", ")
}
