package query

import (
	"errors"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/tickdo/tickdo/internal/ticktick"
)

func intPtr(n int) *int { return &n }

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name      string
		spec      Spec
		wantField string
	}{
		{
			name: "empty spec is valid",
			spec: Spec{},
		},
		{
			name: "all recognized date filters",
			spec: Spec{DateFilter: DateFilterEngaged},
		},
		{
			name: "custom with days",
			spec: Spec{DateFilter: DateFilterCustom, CustomDays: intPtr(3)},
		},
		{
			name:      "unrecognized date filter",
			spec:      Spec{DateFilter: "someday"},
			wantField: "date_filter",
		},
		{
			name:      "custom without days",
			spec:      Spec{DateFilter: DateFilterCustom},
			wantField: "custom_days",
		},
		{
			name:      "custom with negative days",
			spec:      Spec{DateFilter: DateFilterCustom, CustomDays: intPtr(-1)},
			wantField: "custom_days",
		},
		{
			name:      "custom days without custom filter",
			spec:      Spec{DateFilter: DateFilterToday, CustomDays: intPtr(2)},
			wantField: "custom_days",
		},
		{
			name: "valid priority",
			spec: Spec{Priority: intPtr(ticktick.PriorityMedium)},
		},
		{
			name:      "priority outside the domain",
			spec:      Spec{Priority: intPtr(2)},
			wantField: "priority",
		},
		{
			name:      "blank search term",
			spec:      Spec{SearchTerm: "   "},
			wantField: "search_term",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestEmptySpecMatchesEverything(t *testing.T) {
	c := NewClassifier(NewResolver("UTC"), fixedClock(mustParse(t, "2024-01-20T10:00:00Z")))
	pred := Spec{}.Predicate(c)

	tasks := []ticktick.Task{
		{},
		{ID: "t1", Title: "anything"},
		{DueDate: "not a date"},
		{Priority: ticktick.PriorityHigh, DueDate: "2020-01-01T00:00:00Z"},
	}
	for i, task := range tasks {
		if !pred(task) {
			t.Errorf("task %d: empty spec must match every task", i)
		}
	}

	if !(Spec{}).IsEmpty() {
		t.Error("IsEmpty() = false for the zero spec")
	}
	if (Spec{Priority: intPtr(0)}).IsEmpty() {
		t.Error("IsEmpty() = true for a spec with a priority criterion")
	}
}

func TestSpecPredicateCombinesWithAnd(t *testing.T) {
	c := NewClassifier(NewResolver("UTC"), fixedClock(mustParse(t, "2024-01-20T10:00:00Z")))

	spec := Spec{
		Priority:   intPtr(ticktick.PriorityHigh),
		SearchTerm: "bug",
	}
	pred := spec.Predicate(c)

	if !pred(ticktick.Task{Title: "fix login bug", Priority: ticktick.PriorityHigh}) {
		t.Error("task satisfying both criteria must match")
	}
	if pred(ticktick.Task{Title: "fix login bug", Priority: ticktick.PriorityLow}) {
		t.Error("search match alone must not satisfy an AND with priority")
	}
	if pred(ticktick.Task{Title: "refactor parser", Priority: ticktick.PriorityHigh}) {
		t.Error("priority match alone must not satisfy an AND with search")
	}
}

func TestSpecScope(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want Scope
	}{
		{
			name: "task and project select a direct lookup",
			spec: Spec{TaskID: "t1", ProjectID: "p1"},
			want: ScopeTask,
		},
		{
			name: "project alone scans that project",
			spec: Spec{ProjectID: "p1"},
			want: ScopeProject,
		},
		{
			name: "task ID alone scans globally",
			spec: Spec{TaskID: "t1"},
			want: ScopeGlobal,
		},
		{
			name: "empty spec scans globally",
			spec: Spec{},
			want: ScopeGlobal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Scope(); got != tt.want {
				t.Errorf("Scope() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpecDescription(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{
			name: "empty spec",
			spec: Spec{},
			want: "included",
		},
		{
			name: "date and priority and search",
			spec: Spec{
				DateFilter: DateFilterToday,
				Priority:   intPtr(ticktick.PriorityHigh),
				SearchTerm: "bug",
			},
			want: `due today, priority High, matching "bug"`,
		},
		{
			name: "custom zero days reads as today",
			spec: Spec{DateFilter: DateFilterCustom, CustomDays: intPtr(0)},
			want: "due today",
		},
		{
			name: "custom one day",
			spec: Spec{DateFilter: DateFilterCustom, CustomDays: intPtr(1)},
			want: "due in 1 day",
		},
		{
			name: "custom several days",
			spec: Spec{DateFilter: DateFilterCustom, CustomDays: intPtr(4)},
			want: "due in 4 days",
		},
		{
			name: "engaged preset",
			spec: Spec{DateFilter: DateFilterEngaged},
			want: "engaged (high priority, due today, or overdue)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpecCriteriaOrder(t *testing.T) {
	c := NewClassifier(NewResolver("UTC"), fixedClock(mustParse(t, "2024-01-20T10:00:00Z")))

	spec := Spec{
		TaskID:     "t1",
		DateFilter: DateFilterToday,
		Priority:   intPtr(ticktick.PriorityHigh),
		SearchTerm: "bug",
	}

	names := make([]string, 0, 4)
	for _, cr := range spec.criteria(c) {
		names = append(names, cr.name)
	}

	joined := strings.Join(names, "; ")
	want := `task ID "t1"; date filter "today"; priority High; search term "bug"`
	if joined != want {
		t.Errorf("criteria order = %q, want %q", joined, want)
	}
}
