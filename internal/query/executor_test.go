package query

import (
	"context"
	"errors"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickdo/tickdo/internal/ticktick"
)

// fakeStore is an in-memory Store for executor tests. Errors can be
// injected per project ID; calls are counted to verify scan behavior.
type fakeStore struct {
	projects    []ticktick.Project
	data        map[string]*ticktick.ProjectData
	listErr     error
	fetchErrs   map[string]error
	fetchCalls  []string
	getTaskErr  error
	getTaskResp *ticktick.Task
}

func (f *fakeStore) GetAllProjects(ctx context.Context) ([]ticktick.Project, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.projects, nil
}

func (f *fakeStore) GetProjectWithData(ctx context.Context, projectID string) (*ticktick.ProjectData, error) {
	f.fetchCalls = append(f.fetchCalls, projectID)
	if err := f.fetchErrs[projectID]; err != nil {
		return nil, err
	}
	data, ok := f.data[projectID]
	if !ok {
		return nil, errors.New("project not found")
	}
	return data, nil
}

func (f *fakeStore) GetTask(ctx context.Context, projectID, taskID string) (*ticktick.Task, error) {
	if f.getTaskErr != nil {
		return nil, f.getTaskErr
	}
	return f.getTaskResp, nil
}

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	return NewClassifier(NewResolver("UTC"), fixedClock(mustParse(t, "2024-01-20T10:00:00Z")))
}

func TestExecuteValidatesBeforeStoreCalls(t *testing.T) {
	store := &fakeStore{}
	exec := NewExecutor(store, testClassifier(t))

	_, err := exec.Execute(context.Background(), Spec{DateFilter: "someday"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, store.fetchCalls, "no store calls may happen on validation failure")
}

func TestExecuteDirectLookup(t *testing.T) {
	task := ticktick.Task{
		ID:        "t1",
		ProjectID: "p1",
		Title:     "fix login bug",
		Priority:  ticktick.PriorityHigh,
	}
	store := &fakeStore{getTaskResp: &task}
	exec := NewExecutor(store, testClassifier(t))

	t.Run("match", func(t *testing.T) {
		report, err := exec.Execute(context.Background(), Spec{
			TaskID:    "t1",
			ProjectID: "p1",
			Priority:  intPtr(ticktick.PriorityHigh),
		})
		require.NoError(t, err)
		assert.Equal(t, ScopeTask, report.Scope)
		require.NotNil(t, report.Direct)
		assert.True(t, report.Direct.Matched)
		assert.Equal(t, 1, report.TotalMatches())
	})

	t.Run("mismatch names the failing criterion", func(t *testing.T) {
		report, err := exec.Execute(context.Background(), Spec{
			TaskID:     "t1",
			ProjectID:  "p1",
			Priority:   intPtr(ticktick.PriorityHigh),
			SearchTerm: "deploy",
		})
		require.NoError(t, err)
		require.NotNil(t, report.Direct)
		assert.False(t, report.Direct.Matched)
		assert.Equal(t, `task does not satisfy search term "deploy"`, report.Direct.Reason)
		assert.Equal(t, 0, report.TotalMatches())
	})

	t.Run("store error is fatal", func(t *testing.T) {
		failing := &fakeStore{getTaskErr: errors.New("boom")}
		exec := NewExecutor(failing, testClassifier(t))

		_, err := exec.Execute(context.Background(), Spec{TaskID: "t1", ProjectID: "p1"})
		require.Error(t, err)
	})
}

func TestExecuteSingleProject(t *testing.T) {
	tasks := make([]ticktick.Task, 0, 10)
	for i := 0; i < 10; i++ {
		task := ticktick.Task{ID: string(rune('a' + i)), Title: "chore"}
		if i < 2 {
			task.Priority = ticktick.PriorityHigh
			task.Title = "fix the bug"
		} else if i < 5 {
			task.Priority = ticktick.PriorityHigh
		}
		tasks = append(tasks, task)
	}

	store := &fakeStore{
		data: map[string]*ticktick.ProjectData{
			"p1": {
				Project: ticktick.Project{ID: "p1", Name: "Work"},
				Tasks:   tasks,
			},
		},
	}
	exec := NewExecutor(store, testClassifier(t))

	report, err := exec.Execute(context.Background(), Spec{
		ProjectID:  "p1",
		Priority:   intPtr(ticktick.PriorityHigh),
		SearchTerm: "bug",
	})
	require.NoError(t, err)
	assert.Equal(t, ScopeProject, report.Scope)
	require.Len(t, report.Collections, 1)

	col := report.Collections[0]
	assert.Equal(t, 10, col.Total)
	require.Len(t, col.Matches, 2, "only tasks satisfying both criteria may match")
	assert.Equal(t, "a", col.Matches[0].ID)
	assert.Equal(t, "b", col.Matches[1].ID)
}

func TestExecuteSingleProjectFetchErrorIsFatal(t *testing.T) {
	store := &fakeStore{
		fetchErrs: map[string]error{"nonexistent": errors.New("404 not found")},
	}
	exec := NewExecutor(store, testClassifier(t))

	report, err := exec.Execute(context.Background(), Spec{ProjectID: "nonexistent"})
	require.Error(t, err)
	assert.Nil(t, report)
}

func TestExecuteGlobal(t *testing.T) {
	store := &fakeStore{
		projects: []ticktick.Project{
			{ID: "a", Name: "Alpha"},
			{ID: "b", Name: "Bravo"},
			{ID: "closed", Name: "Archive", Closed: true},
			{ID: "c", Name: "Charlie"},
		},
		data: map[string]*ticktick.ProjectData{
			"a": {
				Project: ticktick.Project{ID: "a", Name: "Alpha"},
				Tasks:   []ticktick.Task{{ID: "a1", Title: "one"}, {ID: "a2", Title: "two"}},
			},
			"c": {
				Project: ticktick.Project{ID: "c", Name: "Charlie"},
				Tasks:   []ticktick.Task{{ID: "c1", Title: "three"}},
			},
			ticktick.InboxProjectID: {
				Project: ticktick.Project{ID: ticktick.InboxProjectID, Name: "Inbox"},
				Tasks:   []ticktick.Task{{ID: "i1", Title: "loose end"}},
			},
		},
		fetchErrs: map[string]error{"b": errors.New("503 service unavailable")},
	}
	exec := NewExecutor(store, testClassifier(t))

	report, err := exec.Execute(context.Background(), Spec{})
	require.NoError(t, err, "a per-collection failure must not abort a global scan")
	assert.Equal(t, ScopeGlobal, report.Scope)

	// Listing order, closed projects skipped, inbox last.
	assert.Equal(t, []string{"a", "b", "c", ticktick.InboxProjectID}, store.fetchCalls)
	require.Len(t, report.Collections, 4)

	assert.Equal(t, "a", report.Collections[0].Project.ID)
	assert.Len(t, report.Collections[0].Matches, 2)

	assert.Equal(t, "b", report.Collections[1].Project.ID)
	require.Error(t, report.Collections[1].FetchErr)
	assert.Empty(t, report.Collections[1].Matches)

	assert.Equal(t, "c", report.Collections[2].Project.ID)
	assert.Equal(t, ticktick.InboxProjectID, report.Collections[3].Project.ID)

	assert.Equal(t, 4, report.TotalMatches())
	assert.Equal(t, 1, report.FetchFailures())
}

func TestExecuteGlobalListFailureIsFatal(t *testing.T) {
	store := &fakeStore{listErr: errors.New("401 unauthorized")}
	exec := NewExecutor(store, testClassifier(t))

	report, err := exec.Execute(context.Background(), Spec{})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Empty(t, store.fetchCalls)
}

func TestExecuteGlobalInboxFetchFailureIsRecorded(t *testing.T) {
	store := &fakeStore{
		projects: []ticktick.Project{{ID: "a", Name: "Alpha"}},
		data: map[string]*ticktick.ProjectData{
			"a": {Project: ticktick.Project{ID: "a", Name: "Alpha"}},
		},
		fetchErrs: map[string]error{ticktick.InboxProjectID: errors.New("timeout")},
	}
	exec := NewExecutor(store, testClassifier(t))

	report, err := exec.Execute(context.Background(), Spec{})
	require.NoError(t, err)
	require.Len(t, report.Collections, 2)

	inbox := report.Collections[1]
	assert.Equal(t, ticktick.InboxProjectID, inbox.Project.ID)
	assert.Equal(t, "Inbox", inbox.Project.Name)
	require.Error(t, inbox.FetchErr)
}

func TestExecuteGlobalPreservesListingMetadata(t *testing.T) {
	// The data endpoint returns no project metadata here; the listing
	// metadata must carry over.
	store := &fakeStore{
		projects: []ticktick.Project{{ID: "a", Name: "Alpha", Color: "#F18181"}},
		data: map[string]*ticktick.ProjectData{
			"a":                     {Tasks: []ticktick.Task{{ID: "a1", Title: "one"}}},
			ticktick.InboxProjectID: {Project: ticktick.Project{ID: ticktick.InboxProjectID, Name: "Inbox"}},
		},
	}
	exec := NewExecutor(store, testClassifier(t))

	report, err := exec.Execute(context.Background(), Spec{})
	require.NoError(t, err)
	require.Len(t, report.Collections, 2)
	assert.Equal(t, "Alpha", report.Collections[0].Project.Name)
	assert.Equal(t, "#F18181", report.Collections[0].Project.Color)
}

func TestExecuteTaskIDWithoutProjectScansGlobally(t *testing.T) {
	store := &fakeStore{
		projects: []ticktick.Project{{ID: "a", Name: "Alpha"}},
		data: map[string]*ticktick.ProjectData{
			"a": {
				Project: ticktick.Project{ID: "a", Name: "Alpha"},
				Tasks:   []ticktick.Task{{ID: "t1", Title: "target"}, {ID: "t2", Title: "other"}},
			},
			ticktick.InboxProjectID: {
				Project: ticktick.Project{ID: ticktick.InboxProjectID, Name: "Inbox"},
			},
		},
	}
	exec := NewExecutor(store, testClassifier(t))

	report, err := exec.Execute(context.Background(), Spec{TaskID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, ScopeGlobal, report.Scope)
	assert.Equal(t, 1, report.TotalMatches())
}
