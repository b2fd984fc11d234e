package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tickdo/tickdo/internal/logging"
	"github.com/tickdo/tickdo/internal/ticktick"
)

// Store is the read side of the task/project store the executor scans.
// *ticktick.Client satisfies it; tests substitute fakes.
type Store interface {
	GetAllProjects(ctx context.Context) ([]ticktick.Project, error)
	GetProjectWithData(ctx context.Context, projectID string) (*ticktick.ProjectData, error)
	GetTask(ctx context.Context, projectID, taskID string) (*ticktick.Task, error)
}

// Executor runs queries against a Store. It holds no state between
// executions; each Execute call is one sequential pass over the
// relevant collections.
type Executor struct {
	store      Store
	classifier *Classifier
	logger     *slog.Logger
}

// NewExecutor creates an Executor. The store is an explicit dependency
// so tests can substitute a fake per test.
func NewExecutor(store Store, classifier *Classifier) *Executor {
	return &Executor{
		store:      store,
		classifier: classifier,
		logger:     logging.WithOperation(slog.Default(), "query"),
	}
}

// Execute validates the spec, resolves its scope, and produces a
// report.
//
// Scope resolution: task ID plus project ID selects a direct lookup;
// a project ID alone scans that one project; anything else scans all
// open projects plus the inbox. For the global scan a failed collection
// fetch is recorded inline and skipped, while a failure listing the
// projects themselves is fatal.
func (e *Executor) Execute(ctx context.Context, spec Spec) (*Report, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch spec.Scope() {
	case ScopeTask:
		return e.executeDirect(ctx, spec)
	case ScopeProject:
		return e.executeProject(ctx, spec)
	default:
		return e.executeGlobal(ctx, spec)
	}
}

// executeDirect fetches one task and applies the full predicate to it.
// This path never scans; store errors are fatal.
func (e *Executor) executeDirect(ctx context.Context, spec Spec) (*Report, error) {
	task, err := e.store.GetTask(ctx, spec.ProjectID, spec.TaskID)
	if err != nil {
		return nil, fmt.Errorf("direct lookup of task %s in project %s failed: %w", spec.TaskID, spec.ProjectID, err)
	}

	direct := &DirectResult{Task: *task, Matched: true}
	for _, cr := range spec.criteria(e.classifier) {
		if !cr.pred(*task) {
			direct.Matched = false
			direct.Reason = fmt.Sprintf("task does not satisfy %s", cr.name)
			break
		}
	}

	return &Report{
		Scope:  ScopeTask,
		Filter: spec.Description(),
		Direct: direct,
	}, nil
}

// executeProject scans a single project. Store errors are fatal.
func (e *Executor) executeProject(ctx context.Context, spec Spec) (*Report, error) {
	data, err := e.store.GetProjectWithData(ctx, spec.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %s: %w", spec.ProjectID, err)
	}

	pred := spec.Predicate(e.classifier)
	return &Report{
		Scope:       ScopeProject,
		Filter:      spec.Description(),
		Collections: []CollectionResult{e.scan(*data, pred)},
	}, nil
}

// executeGlobal scans every open project plus the inbox, in the order
// the store lists them, inbox last. Per-collection fetch failures are
// recorded and skipped.
func (e *Executor) executeGlobal(ctx context.Context, spec Spec) (*Report, error) {
	projects, err := e.store.GetAllProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	pred := spec.Predicate(e.classifier)
	report := &Report{
		Scope:  ScopeGlobal,
		Filter: spec.Description(),
	}

	for _, project := range projects {
		if project.Closed {
			continue
		}

		data, err := e.store.GetProjectWithData(ctx, project.ID)
		if err != nil {
			e.logger.Warn("skipping project after fetch failure",
				slog.String("project_id", project.ID), logging.Err(err))
			report.Collections = append(report.Collections, CollectionResult{
				Project:  project,
				FetchErr: err,
			})
			continue
		}
		// Keep the metadata from the listing; the data endpoint may
		// omit it for some project kinds.
		if data.Project.ID == "" {
			data.Project = project
		}
		report.Collections = append(report.Collections, e.scan(*data, pred))
	}

	// Inbox is always scanned, and always last.
	inbox, err := e.store.GetProjectWithData(ctx, ticktick.InboxProjectID)
	if err != nil {
		e.logger.Warn("skipping inbox after fetch failure", logging.Err(err))
		report.Collections = append(report.Collections, CollectionResult{
			Project:  ticktick.Project{ID: ticktick.InboxProjectID, Name: "Inbox"},
			FetchErr: err,
		})
	} else {
		report.Collections = append(report.Collections, e.scan(*inbox, pred))
	}

	return report, nil
}

// scan applies the predicate to a collection, preserving store order.
func (e *Executor) scan(data ticktick.ProjectData, pred Predicate) CollectionResult {
	result := CollectionResult{
		Project: data.Project,
		Total:   len(data.Tasks),
	}
	for _, task := range data.Tasks {
		if pred(task) {
			result.Matches = append(result.Matches, task)
		}
	}
	return result
}
