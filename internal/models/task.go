package models

import (
	"math"
	"time"
)

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func IsValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func IsValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ChecklistItem is owned wholesale by its parent task: the checklist is
// always replaced as a unit, items have no identity of their own.
type ChecklistItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task represents the structure of a task in the system.
type Task struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      TaskPriority    `json:"priority"`
	Status        TaskStatus      `json:"status"`
	DueDate       time.Time       `json:"dueDate"`
	AssignedTo    []int64         `json:"assignedTo"`
	CreatedBy     int64           `json:"createdBy"`
	Attachments   []string        `json:"attachments"`
	TodoChecklist []ChecklistItem `json:"todoChecklist"`
	Progress      int             `json:"progress"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (t *Task) CompletedTodoCount() int {
	n := 0
	for _, item := range t.TodoChecklist {
		if item.Completed {
			n++
		}
	}
	return n
}

func (t *Task) IsAssignedTo(userID int64) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// RecalcProgress recomputes progress from the checklist and derives status
// from it. Rounding is half away from zero. An empty checklist always yields
// progress 0 / Pending, whatever the task looked like before.
//
// Only checklist writes go through here; the status-only update path writes
// status verbatim and leaves progress alone.
func (t *Task) RecalcProgress() {
	total := len(t.TodoChecklist)
	if total > 0 {
		t.Progress = int(math.Round(float64(t.CompletedTodoCount()) / float64(total) * 100))
	} else {
		t.Progress = 0
	}
	switch {
	case t.Progress == 100:
		t.Status = StatusCompleted
	case t.Progress > 0:
		t.Status = StatusInProgress
	default:
		t.Status = StatusPending
	}
}

// TaskFilter defines the available parameters for filtering tasks.
// Statuses are ANDed equality predicates: the list endpoint's summary
// counts stack the caller's status filter on top of each bucket's own
// status, so a mismatched pair legitimately matches nothing.
type TaskFilter struct {
	AssigneeID *int64
	Statuses   []TaskStatus
	NotStatus  *TaskStatus
	DueBefore  *time.Time
}

// UserRef is the display-safe identity projection used when expanding
// assignee/creator references. Never carries the password hash.
type UserRef struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// TaskDetail is a single-task read with references expanded.
type TaskDetail struct {
	Task
	AssignedTo []UserRef `json:"assignedTo"`
	CreatedBy  *UserRef  `json:"createdBy"`
}

// TaskListItem annotates a task for list responses. CompletedTodoCount is
// computed on the fly, never persisted.
type TaskListItem struct {
	Task
	AssignedTo         []UserRef `json:"assignedTo"`
	CompletedTodoCount int       `json:"completedTodoCount"`
}

// StatusSummary accompanies the task list.
type StatusSummary struct {
	All             int `json:"all"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}
