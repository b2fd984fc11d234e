package format

import (
	"fmt"
	"strings"

	"github.com/tickdo/tickdo/internal/query"
	"github.com/tickdo/tickdo/internal/ticktick"
)

// LocalTime renders an API timestamp in the resolved timezone, keeping
// the original value for reference: "2024-01-21 07:59:59
// (Asia/Shanghai) [UTC: 2024-01-20T23:59:59+0000]". Values that fail to
// parse are returned with a plain "(UTC)" suffix.
func LocalTime(resolver *query.Resolver, value, taskZone string) string {
	if value == "" {
		return value
	}

	t, ok := query.ParseDue(value)
	if !ok {
		return value + " (UTC)"
	}

	loc := resolver.Location(taskZone)
	local := t.In(loc)
	return fmt.Sprintf("%s (%s) [UTC: %s]", local.Format("2006-01-02 15:04:05"), loc.String(), value)
}

// Task renders a single task, converting its dates into the resolved
// timezone.
func Task(resolver *query.Resolver, task ticktick.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID: %s\n", task.ID)
	fmt.Fprintf(&b, "Title: %s\n", task.Title)
	fmt.Fprintf(&b, "Project ID: %s\n", task.ProjectID)

	if task.StartDate != "" {
		fmt.Fprintf(&b, "Start Date: %s\n", LocalTime(resolver, task.StartDate, task.TimeZone))
	}
	if task.DueDate != "" {
		fmt.Fprintf(&b, "Due Date: %s\n", LocalTime(resolver, task.DueDate, task.TimeZone))
	}
	if task.TimeZone != "" {
		fmt.Fprintf(&b, "Task Timezone: %s\n", task.TimeZone)
	}

	fmt.Fprintf(&b, "Priority: %s\n", ticktick.PriorityName(task.Priority))

	status := "Active"
	if task.Completed() {
		status = "Completed"
	}
	fmt.Fprintf(&b, "Status: %s\n", status)

	if task.Content != "" {
		fmt.Fprintf(&b, "\nContent:\n%s\n", task.Content)
	}

	if len(task.Items) > 0 {
		fmt.Fprintf(&b, "\nSubtasks (%d):\n", len(task.Items))
		for i, item := range task.Items {
			box := "□"
			if item.Done() {
				box = "✓"
			}
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, box, item.Title)
		}
	}

	return b.String()
}

// Project renders a single project.
func Project(project ticktick.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", project.Name)
	fmt.Fprintf(&b, "ID: %s\n", project.ID)

	if project.Color != "" {
		fmt.Fprintf(&b, "Color: %s\n", project.Color)
	}
	if project.ViewMode != "" {
		fmt.Fprintf(&b, "View Mode: %s\n", project.ViewMode)
	}

	closed := "No"
	if project.Closed {
		closed = "Yes"
	}
	fmt.Fprintf(&b, "Closed: %s\n", closed)

	if project.Kind != "" {
		fmt.Fprintf(&b, "Kind: %s\n", project.Kind)
	}

	return b.String()
}

// Tasks renders a numbered list of tasks under the given label (e.g.
// "tasks", "overdue tasks").
func Tasks(resolver *query.Resolver, tasks []ticktick.Task, label string) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("No %s found.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s:\n\n", len(tasks), label)
	for i, task := range tasks {
		fmt.Fprintf(&b, "Task %d:\n%s\n", i+1, Task(resolver, task))
	}
	return b.String()
}

// Projects renders a numbered list of projects.
func Projects(projects []ticktick.Project, label string) string {
	if len(projects) == 0 {
		return fmt.Sprintf("No %s found.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s:\n\n", len(projects), label)
	for i, project := range projects {
		fmt.Fprintf(&b, "Project %d:\n%s\n", i+1, Project(project))
	}
	return b.String()
}

// Report renders a query report: the direct result for a task lookup,
// or per-collection sections with match counts and inline fetch
// failures for scans.
func Report(resolver *query.Resolver, report *query.Report) string {
	if report.Scope == query.ScopeTask {
		return directResult(resolver, report)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n", report.Filter)
	fmt.Fprintf(&b, "Matched %d task(s) across %d collection(s).\n",
		report.TotalMatches(), len(report.Collections))
	if failures := report.FetchFailures(); failures > 0 {
		fmt.Fprintf(&b, "Warning: %d collection(s) could not be fetched; results are partial.\n", failures)
	}

	for _, col := range report.Collections {
		name := col.Project.Name
		if name == "" {
			name = col.Project.ID
		}

		if col.FetchErr != nil {
			fmt.Fprintf(&b, "\nProject: %s (%s) - fetch failed: %v\n", name, col.Project.ID, col.FetchErr)
			continue
		}

		fmt.Fprintf(&b, "\nProject: %s (%s) - %d of %d task(s) match\n",
			name, col.Project.ID, len(col.Matches), col.Total)
		for i, task := range col.Matches {
			fmt.Fprintf(&b, "\nTask %d:\n%s", i+1, Task(resolver, task))
		}
	}

	return b.String()
}

func directResult(resolver *query.Resolver, report *query.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n", report.Filter)

	if report.Direct == nil {
		b.WriteString("No result.\n")
		return b.String()
	}

	if !report.Direct.Matched {
		fmt.Fprintf(&b, "Task %s does not match: %s\n", report.Direct.Task.ID, report.Direct.Reason)
		return b.String()
	}

	fmt.Fprintf(&b, "\n%s", Task(resolver, report.Direct.Task))
	return b.String()
}
