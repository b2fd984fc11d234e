package query

import (
	"testing"
	_ "time/tzdata"

	"github.com/tickdo/tickdo/internal/ticktick"
)

func TestCombinators(t *testing.T) {
	yes := All
	no := Not(All)
	task := ticktick.Task{ID: "t1"}

	if !And()(task) {
		t.Error("And() with no predicates must match")
	}
	if !And(yes, yes)(task) {
		t.Error("And(yes, yes) must match")
	}
	if And(yes, no)(task) {
		t.Error("And(yes, no) must not match")
	}

	if Or()(task) {
		t.Error("Or() with no predicates must not match")
	}
	if !Or(no, yes)(task) {
		t.Error("Or(no, yes) must match")
	}
	if Or(no, no)(task) {
		t.Error("Or(no, no) must not match")
	}

	if Not(yes)(task) {
		t.Error("Not(yes) must not match")
	}
}

func TestHasIDAndHasPriority(t *testing.T) {
	task := ticktick.Task{ID: "t1", Priority: ticktick.PriorityHigh}

	if !HasID("t1")(task) {
		t.Error("HasID(t1) must match")
	}
	if HasID("t2")(task) {
		t.Error("HasID(t2) must not match")
	}
	if HasID("T1")(task) {
		t.Error("HasID is exact, not case-insensitive")
	}

	if !HasPriority(ticktick.PriorityHigh)(task) {
		t.Error("HasPriority(5) must match")
	}
	if HasPriority(ticktick.PriorityNone)(task) {
		t.Error("HasPriority(0) must not match")
	}
}

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name string
		task ticktick.Task
		term string
		want bool
	}{
		{
			name: "title match is case-insensitive",
			task: ticktick.Task{Title: "Buy Milk"},
			term: "milk",
			want: true,
		},
		{
			name: "content match",
			task: ticktick.Task{Title: "errand", Content: "remember the MILK"},
			term: "milk",
			want: true,
		},
		{
			name: "subtask title match",
			task: ticktick.Task{
				Title: "groceries",
				Items: []ticktick.ChecklistItem{{Title: "Buy Milk"}},
			},
			term: "milk",
			want: true,
		},
		{
			name: "no match anywhere",
			task: ticktick.Task{Title: "water the plants", Content: "back garden"},
			term: "milk",
			want: false,
		},
		{
			name: "desc is not searched",
			task: ticktick.Task{Title: "errand", Desc: "milk"},
			term: "milk",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesSearch(tt.term)(tt.task); got != tt.want {
				t.Errorf("MatchesSearch(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestEngagedPreset(t *testing.T) {
	c := NewClassifier(NewResolver("UTC"), fixedClock(mustParse(t, "2024-01-20T10:00:00Z")))
	engaged := Engaged(c)

	tests := []struct {
		name string
		task ticktick.Task
		want bool
	}{
		{
			name: "high priority with no due date",
			task: ticktick.Task{Priority: ticktick.PriorityHigh},
			want: true,
		},
		{
			name: "due today",
			task: ticktick.Task{DueDate: "2024-01-20T18:00:00Z"},
			want: true,
		},
		{
			name: "overdue",
			task: ticktick.Task{DueDate: "2024-01-19T09:00:00Z"},
			want: true,
		},
		{
			name: "low priority due in five days",
			task: ticktick.Task{Priority: ticktick.PriorityLow, DueDate: "2024-01-25T09:00:00Z"},
			want: false,
		},
		{
			name: "nothing going on",
			task: ticktick.Task{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engaged(tt.task); got != tt.want {
				t.Errorf("Engaged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextPreset(t *testing.T) {
	c := NewClassifier(NewResolver("UTC"), fixedClock(mustParse(t, "2024-01-20T10:00:00Z")))
	next := Next(c)

	tests := []struct {
		name string
		task ticktick.Task
		want bool
	}{
		{
			name: "medium priority",
			task: ticktick.Task{Priority: ticktick.PriorityMedium},
			want: true,
		},
		{
			name: "due tomorrow",
			task: ticktick.Task{DueDate: "2024-01-21T09:00:00Z"},
			want: true,
		},
		{
			name: "high priority due today",
			task: ticktick.Task{Priority: ticktick.PriorityHigh, DueDate: "2024-01-20T18:00:00Z"},
			want: false,
		},
		{
			name: "no priority no due date",
			task: ticktick.Task{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := next(tt.task); got != tt.want {
				t.Errorf("Next = %v, want %v", got, tt.want)
			}
		})
	}
}
