package domain

import "time"

type TaskType string

const (
	TaskCleaning    TaskType = "cleaning"
	TaskMaintenance TaskType = "maintenance"
	TaskInspection  TaskType = "inspection"
	TaskDeepClean   TaskType = "deep_clean"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type HousekeepingTask struct {
	ID               string       `json:"id"`
	RoomID           string       `json:"room_id,omitempty"`
	RoomNumber       string       `json:"room_number,omitempty"`
	TaskType         TaskType     `json:"task_type"`
	Priority         TaskPriority `json:"priority"`
	Status           TaskStatus   `json:"status"`
	AssignedTo       string       `json:"assigned_to,omitempty"`
	Description      string       `json:"description,omitempty"`
	EstimatedMinutes int          `json:"estimated_minutes,omitempty"`
	CreatedBy        string       `json:"created_by,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	StartedAt        *time.Time   `json:"started_at,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}

// Open reports whether the task still needs work.
func (t HousekeepingTask) Open() bool {
	return t.Status == TaskPending || t.Status == TaskInProgress
}

func (t HousekeepingTask) Validate() []string {
	var warnings []string
	if t.CompletedAt != nil && t.Status != TaskCompleted {
		warnings = append(warnings, "completed_at set on a task that is not completed")
	}
	if t.StartedAt != nil && t.Status != TaskInProgress && t.Status != TaskCompleted {
		warnings = append(warnings, "started_at set on a task that has not started")
	}
	return warnings
}
