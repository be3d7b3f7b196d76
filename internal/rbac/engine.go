package rbac

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
)

// PermissionEngine answers the four task capability questions. It is pure
// decision logic: no mutation, no side effects beyond the scope lookup.
type PermissionEngine struct {
	scope *OrgScopeResolver
}

// NewPermissionEngine creates a new permission engine
func NewPermissionEngine(scope *OrgScopeResolver) *PermissionEngine {
	return &PermissionEngine{scope: scope}
}

// CanCreateTask reports whether the user may create tasks. Every role may
// create within its own organization; the "requested org must equal the
// caller's org" rule is a data constraint enforced by the orchestrator.
func (e *PermissionEngine) CanCreateTask(user domain.User) bool {
	return true
}

// CanReadTasks reports whether the user may list tasks. Always true at the
// role layer; which tasks are visible is a query-shaping concern owned by
// the orchestrator.
func (e *PermissionEngine) CanReadTasks(user domain.User) bool {
	return true
}

// CanUpdateTask reports whether the user may update the given task.
// Viewers may only touch tasks they authored. Admin and Owner may update
// any task whose organization is in their accessible set.
func (e *PermissionEngine) CanUpdateTask(ctx context.Context, user domain.User, task *domain.Task) bool {
	if user.Role == domain.RoleViewer {
		return task.CreatedBy == user.ID
	}

	for _, orgID := range e.scope.AccessibleOrganizationIDs(ctx, user) {
		if orgID == task.OrganizationID {
			return true
		}
	}
	return false
}

// CanDeleteTask reports whether the user may delete the given task.
// Viewers never may, regardless of authorship.
func (e *PermissionEngine) CanDeleteTask(ctx context.Context, user domain.User, task *domain.Task) bool {
	if user.Role == domain.RoleViewer {
		return false
	}

	for _, orgID := range e.scope.AccessibleOrganizationIDs(ctx, user) {
		if orgID == task.OrganizationID {
			return true
		}
	}
	return false
}
