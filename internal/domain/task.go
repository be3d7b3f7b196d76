package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusScheduled  TaskStatus = "scheduled"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

// IsValid reports whether s is a known lifecycle state.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusScheduled, TaskStatusInProgress,
		TaskStatusBlocked, TaskStatusCompleted, TaskStatusArchived:
		return true
	}
	return false
}

// TaskCategory represents the category of a task
type TaskCategory string

const (
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
	TaskCategoryShopping TaskCategory = "shopping"
	TaskCategoryOther    TaskCategory = "other"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Task is the guarded multi-tenant resource. OrganizationID is immutable
// after creation.
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       TaskCategory `json:"category"`
	Priority       TaskPriority `json:"priority"`
	Status         TaskStatus   `json:"status"`
	OrganizationID string       `json:"organization_id"`
	CreatedBy      string       `json:"created_by"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewTask creates a task in the given organization. New tasks always start
// in the todo state.
func NewTask(title, description string, category TaskCategory, priority TaskPriority, organizationID, createdBy string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    description,
		Category:       category,
		Priority:       priority,
		Status:         TaskStatusTodo,
		OrganizationID: organizationID,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SetStatus changes the lifecycle state and bumps UpdatedAt. Transition
// validity is the orchestrator's responsibility.
func (t *Task) SetStatus(status TaskStatus) {
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
}

// TaskUpdate carries the optional general-field edits applied by the
// orchestrator's Update operation. Status is deliberately absent; status
// changes go through UpdateStatus and its lifecycle checks.
type TaskUpdate struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *TaskCategory `json:"category,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
}

// Apply copies the set fields onto the task and bumps UpdatedAt.
func (u TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	t.UpdatedAt = time.Now().UTC()
}
