package ports

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
)

// AuditEvent is the decision/mutation event carried from the orchestrator
// to the audit recorder. One event becomes one audit entry.
type AuditEvent struct {
	UserID       string
	Action       domain.ActionType
	ResourceType string
	ResourceID   string
	Metadata     map[string]string
}

// AuditPublisher publishes audit events onto an asynchronous channel.
// Publishing is fire-and-forget: the caller never waits for the append and
// a failed or dropped publish must not affect the guarded operation.
type AuditPublisher interface {
	Publish(ctx context.Context, event AuditEvent)
}
