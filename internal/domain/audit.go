package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActionType classifies audit entries
type ActionType string

const (
	ActionCreate            ActionType = "CREATE"
	ActionRead              ActionType = "READ"
	ActionUpdate            ActionType = "UPDATE"
	ActionDelete            ActionType = "DELETE"
	ActionTaskStatusChanged ActionType = "TASK_STATUS_CHANGED"
)

// ResourceTypeTask labels audit entries about tasks.
const ResourceTypeTask = "Task"

// BlockedResourcePrefix marks the resource-id field of audit entries for
// refused actions (e.g. "BLOCKED: Wrong Org", "BLOCKED: Unauthorized <id>").
const BlockedResourcePrefix = "BLOCKED:"

// AuditLogEntry is one immutable record of an allowed or refused action.
// Entries are created once and never mutated or deleted by this service.
type AuditLogEntry struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	Action       ActionType        `json:"action"`
	ResourceType string            `json:"resource_type"`
	ResourceID   string            `json:"resource_id,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// NewAuditLogEntry stamps an entry with a fresh id and the current time.
func NewAuditLogEntry(userID string, action ActionType, resourceType, resourceID string, metadata map[string]string) *AuditLogEntry {
	return &AuditLogEntry{
		ID:           uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     metadata,
		Timestamp:    time.Now().UTC(),
	}
}
