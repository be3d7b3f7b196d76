package domain

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task := NewTask("Write report", "Quarterly numbers", TaskCategoryWork, TaskPriorityHigh, "org-a", "user-1")

	if task.ID == "" {
		t.Error("Expected a generated id")
	}
	if task.Title != "Write report" {
		t.Errorf("Expected title %q, got %q", "Write report", task.Title)
	}
	if task.Status != TaskStatusTodo {
		t.Errorf("Expected new tasks to start in %s, got %s", TaskStatusTodo, task.Status)
	}
	if task.OrganizationID != "org-a" {
		t.Errorf("Expected organization org-a, got %s", task.OrganizationID)
	}
	if task.CreatedBy != "user-1" {
		t.Errorf("Expected creator user-1, got %s", task.CreatedBy)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should be equal initially")
	}
}

func TestTask_SetStatus(t *testing.T) {
	task := NewTask("Test", "", TaskCategoryOther, TaskPriorityLow, "org-a", "user-1")
	oldUpdatedAt := task.UpdatedAt

	time.Sleep(time.Millisecond)
	task.SetStatus(TaskStatusInProgress)

	if task.Status != TaskStatusInProgress {
		t.Errorf("Expected status %s, got %s", TaskStatusInProgress, task.Status)
	}
	if !task.UpdatedAt.After(oldUpdatedAt) {
		t.Error("Expected UpdatedAt to advance on status change")
	}
}

func TestTaskUpdate_Apply(t *testing.T) {
	task := NewTask("Old title", "Old description", TaskCategoryWork, TaskPriorityLow, "org-a", "user-1")

	newTitle := "New title"
	newPriority := TaskPriorityHigh
	update := TaskUpdate{Title: &newTitle, Priority: &newPriority}
	update.Apply(task)

	if task.Title != newTitle {
		t.Errorf("Expected title %q, got %q", newTitle, task.Title)
	}
	if task.Priority != newPriority {
		t.Errorf("Expected priority %s, got %s", newPriority, task.Priority)
	}
	if task.Description != "Old description" {
		t.Error("Expected unset fields to be left alone")
	}
	if task.Status != TaskStatusTodo {
		t.Error("Expected Apply to never touch status")
	}
}

func TestTaskStatusValues(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected string
	}{
		{TaskStatusTodo, "todo"},
		{TaskStatusScheduled, "scheduled"},
		{TaskStatusInProgress, "in-progress"},
		{TaskStatusBlocked, "blocked"},
		{TaskStatusCompleted, "completed"},
		{TaskStatusArchived, "archived"},
	}

	for _, tt := range tests {
		if string(tt.status) != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, string(tt.status))
		}
		if !tt.status.IsValid() {
			t.Errorf("Expected %s to be valid", tt.status)
		}
	}

	if TaskStatus("open").IsValid() {
		t.Error("Expected unknown status to be invalid")
	}
}

func TestRoleValues(t *testing.T) {
	tests := []struct {
		role     Role
		expected string
	}{
		{RoleOwner, "Owner"},
		{RoleAdmin, "Admin"},
		{RoleViewer, "Viewer"},
	}

	for _, tt := range tests {
		if string(tt.role) != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, string(tt.role))
		}
		if !tt.role.IsValid() {
			t.Errorf("Expected %s to be valid", tt.role)
		}
	}

	if Role("Superuser").IsValid() {
		t.Error("Expected unknown role to be invalid")
	}
}
