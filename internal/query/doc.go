// Package query implements the timezone-aware query engine over
// TickTick tasks.
//
// The engine is built from small, composable pieces:
//
//   - NormalizeISODate canonicalizes the date-time string encodings the
//     TickTick API emits.
//   - Resolver picks the timezone used for calendar-day comparisons
//     (task timezone, then configured display timezone, then host local).
//   - Classifier provides pure due-date predicates ("due today",
//     "overdue", "due in N days") against an injectable clock.
//   - Predicate and its combinators (And, Or, Not) compose multi-criteria
//     filters; Engaged and Next are the GTD-style presets.
//   - Spec is a validated query description; Executor resolves its scope
//     (single task, single project, or all open projects plus the inbox)
//     and produces a Report.
//
// Classification is deliberately lenient: a task whose due date is
// absent or unparseable simply never matches a date filter. Store
// failures during a global scan are recorded per collection and do not
// abort the query; failures on direct lookups and single-project scans
// are fatal.
package query
