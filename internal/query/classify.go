package query

import (
	"time"

	"github.com/tickdo/tickdo/internal/ticktick"
)

// Classifier provides pure due-date predicates over tasks.
//
// The reference clock is injected so that classifications are
// reproducible in tests: identical (task, now, timezone policy) inputs
// always yield identical results. All predicates return false for tasks
// whose due date is absent or unparseable; they never fail.
type Classifier struct {
	resolver *Resolver
	now      func() time.Time
}

// NewClassifier creates a Classifier using the given timezone resolver
// and clock. A nil clock defaults to time.Now.
func NewClassifier(resolver *Resolver, now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{resolver: resolver, now: now}
}

// Resolver returns the timezone resolver the classifier uses.
func (c *Classifier) Resolver() *Resolver {
	return c.resolver
}

// dueInstant parses the task's due date as an absolute instant.
func (c *Classifier) dueInstant(t ticktick.Task) (time.Time, bool) {
	return ParseDue(t.DueDate)
}

// DueToday reports whether the task's due date falls on the current
// calendar day in the task's resolved timezone.
func (c *Classifier) DueToday(t ticktick.Task) bool {
	return c.DueInDays(t, 0)
}

// Overdue reports whether the task's due instant is strictly before
// now. The comparison is instant-based: a task due today at 23:59:59 is
// overdue only after that moment passes, not merely because the
// calendar date has arrived.
func (c *Classifier) Overdue(t ticktick.Task) bool {
	due, ok := c.dueInstant(t)
	if !ok {
		return false
	}
	return due.Before(c.now())
}

// DueInDays reports whether the task is due exactly days calendar days
// from today, both computed in the task's resolved timezone.
// DueInDays(t, 0) is equivalent to DueToday(t).
func (c *Classifier) DueInDays(t ticktick.Task, days int) bool {
	due, ok := c.dueInstant(t)
	if !ok {
		return false
	}

	loc := c.resolver.Location(t.TimeZone)
	dueLocal := due.In(loc)
	target := c.now().In(loc).AddDate(0, 0, days)

	y1, m1, d1 := dueLocal.Date()
	y2, m2, d2 := target.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DueWithinNextDays reports whether the task is due on some calendar
// day in [today, today+n-1]. DueWithinNextDays(t, 7) is the "next 7
// days" window.
func (c *Classifier) DueWithinNextDays(t ticktick.Task, n int) bool {
	for day := 0; day < n; day++ {
		if c.DueInDays(t, day) {
			return true
		}
	}
	return false
}
