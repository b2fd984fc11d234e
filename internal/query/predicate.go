package query

import (
	"strings"

	"github.com/tickdo/tickdo/internal/ticktick"
)

// Predicate is a boolean filter over a task.
type Predicate func(ticktick.Task) bool

// And returns a predicate that holds when every given predicate holds.
// With no arguments it matches every task.
func And(ps ...Predicate) Predicate {
	return func(t ticktick.Task) bool {
		for _, p := range ps {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate that holds when at least one of the given
// predicates holds.
func Or(ps ...Predicate) Predicate {
	return func(t ticktick.Task) bool {
		for _, p := range ps {
			if p(t) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func(t ticktick.Task) bool {
		return !p(t)
	}
}

// All matches every task.
func All(ticktick.Task) bool {
	return true
}

// HasID matches tasks with exactly the given ID.
func HasID(id string) Predicate {
	return func(t ticktick.Task) bool {
		return t.ID == id
	}
}

// HasPriority matches tasks with exactly the given priority level.
func HasPriority(priority int) Predicate {
	return func(t ticktick.Task) bool {
		return t.Priority == priority
	}
}

// MatchesSearch matches tasks whose title, content, or any subtask
// title contains term, case-insensitively.
func MatchesSearch(term string) Predicate {
	term = strings.ToLower(term)
	return func(t ticktick.Task) bool {
		if strings.Contains(strings.ToLower(t.Title), term) {
			return true
		}
		if strings.Contains(strings.ToLower(t.Content), term) {
			return true
		}
		for _, item := range t.Items {
			if strings.Contains(strings.ToLower(item.Title), term) {
				return true
			}
		}
		return false
	}
}

// DueInDays returns a predicate for tasks due exactly days calendar
// days from today.
func DueInDays(c *Classifier, days int) Predicate {
	return func(t ticktick.Task) bool {
		return c.DueInDays(t, days)
	}
}

// DueWithinNextDays returns a predicate for tasks due within the next n
// calendar days (today counts as day zero).
func DueWithinNextDays(c *Classifier, n int) Predicate {
	return func(t ticktick.Task) bool {
		return c.DueWithinNextDays(t, n)
	}
}

// Engaged is the GTD "engaged" preset: high priority, due today, or
// overdue.
func Engaged(c *Classifier) Predicate {
	return Or(
		HasPriority(ticktick.PriorityHigh),
		c.DueToday,
		c.Overdue,
	)
}

// Next is the GTD "next" preset: medium priority or due tomorrow.
func Next(c *Classifier) Predicate {
	return Or(
		HasPriority(ticktick.PriorityMedium),
		DueInDays(c, 1),
	)
}
