package query

import "github.com/tickdo/tickdo/internal/ticktick"

// Scope identifies what a query executed against.
type Scope string

const (
	// ScopeTask is a direct lookup of a single task.
	ScopeTask Scope = "task"

	// ScopeProject is a scan of a single project (or the inbox).
	ScopeProject Scope = "project"

	// ScopeGlobal is a scan of all open projects plus the inbox.
	ScopeGlobal Scope = "global"
)

// DirectResult is the outcome of a direct task lookup.
type DirectResult struct {
	Task    ticktick.Task
	Matched bool

	// Reason names the criterion that rejected the task when Matched is
	// false, so callers can see which filter failed.
	Reason string
}

// CollectionResult is the outcome of scanning one task collection (a
// project or the inbox).
type CollectionResult struct {
	Project ticktick.Project

	// Matches holds the matching tasks in store order.
	Matches []ticktick.Task

	// Total is the number of tasks the collection held before
	// filtering.
	Total int

	// FetchErr records a failed fetch for this collection during a
	// global scan. When set, Matches and Total are meaningless; the
	// report distinguishes "0 matches" from "could not be fetched".
	FetchErr error
}

// Report is the aggregated result of one query execution. Collections
// appear in the order they were visited: store listing order, inbox
// last.
type Report struct {
	Scope  Scope
	Filter string

	// Direct is set for ScopeTask only.
	Direct *DirectResult

	// Collections is set for ScopeProject and ScopeGlobal.
	Collections []CollectionResult
}

// TotalMatches returns the number of matched tasks across all
// collections (or 0/1 for a direct lookup).
func (r *Report) TotalMatches() int {
	if r.Direct != nil {
		if r.Direct.Matched {
			return 1
		}
		return 0
	}

	n := 0
	for _, c := range r.Collections {
		n += len(c.Matches)
	}
	return n
}

// FetchFailures returns the number of collections that could not be
// fetched.
func (r *Report) FetchFailures() int {
	n := 0
	for _, c := range r.Collections {
		if c.FetchErr != nil {
			n++
		}
	}
	return n
}
