package ticktick

// InboxProjectID is the synthetic project ID for the TickTick inbox.
// The inbox is always present and holds tasks not assigned to any
// user-created project.
const InboxProjectID = "inbox"

// Task priority levels as used by the TickTick API.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 3
	PriorityHigh   = 5
)

// Task status values as used by the TickTick API.
const (
	TaskStatusActive    = 0
	TaskStatusCompleted = 2
)

// ItemStatusDone is the status value of a completed checklist item.
const ItemStatusDone = 1

// ValidPriority reports whether p is one of the priority levels the API
// accepts (0 None, 1 Low, 3 Medium, 5 High).
func ValidPriority(p int) bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PriorityName returns the human-readable name for a priority level.
func PriorityName(p int) string {
	switch p {
	case PriorityNone:
		return "None"
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return "Unknown"
}

// ChecklistItem represents a subtask within a task.
type ChecklistItem struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status,omitempty"`
}

// Done reports whether the checklist item is completed.
func (i ChecklistItem) Done() bool {
	return i.Status == ItemStatusDone
}

// Task represents a TickTick task.
//
// DueDate and StartDate are date-time strings as returned by the API,
// which uses several ISO-8601 encodings ("2019-11-13T03:00:00+0000",
// trailing "Z", or colon-separated offsets). TimeZone, when set, is the
// IANA zone the task was scheduled in and overrides the display
// timezone for calendar-day comparisons.
type Task struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"projectId,omitempty"`
	Title      string          `json:"title"`
	Content    string          `json:"content,omitempty"`
	Desc       string          `json:"desc,omitempty"`
	IsAllDay   bool            `json:"isAllDay,omitempty"`
	StartDate  string          `json:"startDate,omitempty"`
	DueDate    string          `json:"dueDate,omitempty"`
	TimeZone   string          `json:"timeZone,omitempty"`
	Priority   int             `json:"priority,omitempty"`
	Status     int             `json:"status,omitempty"`
	Reminders  []string        `json:"reminders,omitempty"`
	RepeatFlag string          `json:"repeatFlag,omitempty"`
	SortOrder  int64           `json:"sortOrder,omitempty"`
	Items      []ChecklistItem `json:"items,omitempty"`
}

// Completed reports whether the task is completed.
func (t Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}

// Project represents a TickTick project (a task list).
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Closed   bool   `json:"closed,omitempty"`
	GroupID  string `json:"groupId,omitempty"`
	ViewMode string `json:"viewMode,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// Inbox reports whether the project is the synthetic inbox collection.
func (p Project) Inbox() bool {
	return p.ID == InboxProjectID
}

// ProjectData bundles a project with its tasks, as returned by the
// project data endpoint.
type ProjectData struct {
	Project Project `json:"project"`
	Tasks   []Task  `json:"tasks"`
}

// TaskInput represents the input for creating or updating a task.
// ID is only set for updates, where the API expects it in the body as
// well as the path.
type TaskInput struct {
	ID         string          `json:"id,omitempty"`
	Title      string          `json:"title,omitempty"`
	ProjectID  string          `json:"projectId,omitempty"`
	Content    string          `json:"content,omitempty"`
	Desc       string          `json:"desc,omitempty"`
	IsAllDay   *bool           `json:"isAllDay,omitempty"`
	StartDate  string          `json:"startDate,omitempty"`
	DueDate    string          `json:"dueDate,omitempty"`
	TimeZone   string          `json:"timeZone,omitempty"`
	Priority   *int            `json:"priority,omitempty"`
	Reminders  []string        `json:"reminders,omitempty"`
	RepeatFlag string          `json:"repeatFlag,omitempty"`
	SortOrder  *int64          `json:"sortOrder,omitempty"`
	Items      []ChecklistItem `json:"items,omitempty"`
}

// ProjectInput represents the input for creating or updating a project.
type ProjectInput struct {
	Name     string `json:"name,omitempty"`
	Color    string `json:"color,omitempty"`
	ViewMode string `json:"viewMode,omitempty"`
	Kind     string `json:"kind,omitempty"`
}
