package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
	"github.com/taskhive/taskhive/internal/rbac"
)

// RecordActionRequest is a client-side action report. Dashboards post
// free-form action strings; Record normalizes them into the closed
// ActionType/resource-type vocabulary before publishing.
type RecordActionRequest struct {
	Action       string `json:"action"`
	ResourceType string `json:"resource_type,omitempty"`
	ResourceID   string `json:"resource_id,omitempty"`
}

// AuditUseCase exposes the audit trail: a privileged global listing and a
// publish path for client-reported actions.
type AuditUseCase struct {
	auditRepo ports.AuditRepository
	publisher ports.AuditPublisher
}

// NewAuditUseCase creates a new audit use case
func NewAuditUseCase(auditRepo ports.AuditRepository, publisher ports.AuditPublisher) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo, publisher: publisher}
}

// FindAll lists audit entries across all resources, newest first. Only
// Admin and Owner may read the global trail.
func (uc *AuditUseCase) FindAll(ctx context.Context, user domain.User, limit int) ([]*domain.AuditLogEntry, error) {
	if !rbac.HasRequiredRole(user.Role, []domain.Role{domain.RoleOwner, domain.RoleAdmin}) {
		return nil, domain.NewAccessDenied("Insufficient role to read the audit log")
	}

	entries, err := uc.auditRepo.FindAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

// Record normalizes and publishes a client-reported action. Publication is
// fire-and-forget like every other audit event.
func (uc *AuditUseCase) Record(ctx context.Context, user domain.User, req RecordActionRequest) error {
	if req.Action == "" {
		return domain.NewInvalidRequest("action is required")
	}

	uc.publisher.Publish(ctx, ports.AuditEvent{
		UserID:       user.ID,
		Action:       normalizeAction(req.Action),
		ResourceType: normalizeResourceType(req.ResourceType, req.Action),
		ResourceID:   req.ResourceID,
	})
	return nil
}

var (
	userActionPattern = regexp.MustCompile(`(?i)Profile|Security|Preferences|User`)
	taskActionPattern = regexp.MustCompile(`(?i)Task`)
	orgActionPattern  = regexp.MustCompile(`(?i)Organization|Org`)
)

// normalizeAction maps a free-form action string onto the closed
// ActionType enum, defaulting to UPDATE.
func normalizeAction(action string) domain.ActionType {
	switch domain.ActionType(action) {
	case domain.ActionCreate, domain.ActionRead, domain.ActionUpdate,
		domain.ActionDelete, domain.ActionTaskStatusChanged:
		return domain.ActionType(action)
	}

	upper := strings.ToUpper(action)
	switch {
	case strings.Contains(upper, "UPDATE"):
		return domain.ActionUpdate
	case strings.Contains(upper, "CREATE"):
		return domain.ActionCreate
	case strings.Contains(upper, "DELETE"):
		return domain.ActionDelete
	case strings.Contains(upper, "READ"):
		return domain.ActionRead
	}
	return domain.ActionUpdate
}

// normalizeResourceType prefers the reported type, falls back to guessing
// from the action text, and title-cases the known labels for consistency.
func normalizeResourceType(resourceType, action string) string {
	rt := resourceType
	if rt == "" || rt == "UNKNOWN" {
		switch {
		case userActionPattern.MatchString(action):
			rt = "User"
		case taskActionPattern.MatchString(action):
			rt = domain.ResourceTypeTask
		case orgActionPattern.MatchString(action):
			rt = "Organization"
		default:
			rt = "UNKNOWN"
		}
	}

	switch rt {
	case "USER":
		rt = "User"
	case "TASK":
		rt = domain.ResourceTypeTask
	case "ORGANIZATION":
		rt = "Organization"
	}
	return rt
}
