package usecase

import (
	"context"
	"fmt"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
	"github.com/taskhive/taskhive/internal/rbac"
	"github.com/taskhive/taskhive/internal/service/logger"
)

// CreateTaskRequest carries the fields for a new task. OrganizationID is
// optional; when supplied it must equal the caller's own organization.
type CreateTaskRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Category       domain.TaskCategory `json:"category"`
	Priority       domain.TaskPriority `json:"priority"`
	OrganizationID string              `json:"organization_id,omitempty"`
}

// TaskUseCase sequences every mutating task operation: load, scope check,
// permission check, lifecycle check for status changes, persist, then a
// fire-and-forget audit event. It is the only component that mutates state.
type TaskUseCase struct {
	taskRepo  ports.TaskRepository
	auditRepo ports.AuditRepository
	scope     *rbac.OrgScopeResolver
	engine    *rbac.PermissionEngine
	publisher ports.AuditPublisher
	log       logger.Logger
}

// NewTaskUseCase creates a new task use case
func NewTaskUseCase(
	taskRepo ports.TaskRepository,
	auditRepo ports.AuditRepository,
	scope *rbac.OrgScopeResolver,
	engine *rbac.PermissionEngine,
	publisher ports.AuditPublisher,
	log logger.Logger,
) *TaskUseCase {
	return &TaskUseCase{
		taskRepo:  taskRepo,
		auditRepo: auditRepo,
		scope:     scope,
		engine:    engine,
		publisher: publisher,
		log:       log,
	}
}

// Create makes a new task in the caller's organization. Supplying a
// different organization id is a refused write attempt and is audit-logged
// with the blocked sentinel before any task exists.
func (uc *TaskUseCase) Create(ctx context.Context, user domain.User, req CreateTaskRequest) (*domain.Task, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	if !uc.engine.CanCreateTask(user) {
		return nil, domain.NewAccessDenied("Cannot create tasks")
	}

	if req.OrganizationID != "" && req.OrganizationID != user.OrganizationID {
		uc.publisher.Publish(ctx, ports.AuditEvent{
			UserID:       user.ID,
			Action:       domain.ActionCreate,
			ResourceType: domain.ResourceTypeTask,
			ResourceID:   "BLOCKED: Wrong Org",
		})
		return nil, domain.NewAccessDenied("Cannot create task in another organization")
	}

	task := domain.NewTask(req.Title, req.Description, req.Category, req.Priority, user.OrganizationID, user.ID)

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	uc.publisher.Publish(ctx, ports.AuditEvent{
		UserID:       user.ID,
		Action:       domain.ActionCreate,
		ResourceType: domain.ResourceTypeTask,
		ResourceID:   task.ID,
	})

	return task, nil
}

// FindAll lists the tasks visible to the user. Viewers are scoped by
// direct home-organization equality; Admin and Owner query across their
// accessible organization set. An empty accessible set short-circuits to
// an empty result without touching the store.
func (uc *TaskUseCase) FindAll(ctx context.Context, user domain.User) ([]*domain.Task, error) {
	if user.Role == domain.RoleViewer {
		tasks, err := uc.taskRepo.FindByOrganization(ctx, user.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		return tasks, nil
	}

	accessible := uc.scope.AccessibleOrganizationIDs(ctx, user)
	if len(accessible) == 0 {
		return []*domain.Task{}, nil
	}

	tasks, err := uc.taskRepo.FindByOrganizations(ctx, accessible)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies general field edits. Status is not among them; status
// changes go through UpdateStatus and its stricter checks.
func (uc *TaskUseCase) Update(ctx context.Context, user domain.User, id string, update domain.TaskUpdate) (*domain.Task, error) {
	task, err := uc.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !uc.engine.CanUpdateTask(ctx, user, task) {
		uc.publisher.Publish(ctx, ports.AuditEvent{
			UserID:       user.ID,
			Action:       domain.ActionUpdate,
			ResourceType: domain.ResourceTypeTask,
			ResourceID:   "BLOCKED: Unauthorized " + id,
		})
		return nil, domain.NewAccessDenied("Cannot update this task")
	}

	update.Apply(task)

	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	uc.publisher.Publish(ctx, ports.AuditEvent{
		UserID:       user.ID,
		Action:       domain.ActionUpdate,
		ResourceType: domain.ResourceTypeTask,
		ResourceID:   id,
	})

	return task, nil
}

// UpdateStatus validates a lifecycle transition. Check order is fixed and
// observable: organization scope, then transition table, then role
// overrides, then the fine-grained update permission. A cross-organization
// caller must see the scope error even when the transition is also invalid.
func (uc *TaskUseCase) UpdateStatus(ctx context.Context, user domain.User, id string, newStatus domain.TaskStatus) (*domain.Task, error) {
	task, err := uc.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	accessible := uc.scope.AccessibleOrganizationIDs(ctx, user)
	if !containsString(accessible, task.OrganizationID) && user.OrganizationID != task.OrganizationID {
		uc.publisher.Publish(ctx, ports.AuditEvent{
			UserID:       user.ID,
			Action:       domain.ActionUpdate,
			ResourceType: domain.ResourceTypeTask,
			ResourceID:   "BLOCKED: Wrong Org " + id,
		})
		return nil, domain.NewAccessDenied("Cannot update status for task in another organization")
	}

	if !domain.CanTransition(task.Status, newStatus) {
		return nil, domain.NewInvalidRequest(fmt.Sprintf("Invalid transition from %s to %s", task.Status, newStatus))
	}

	if user.Role == domain.RoleViewer {
		return nil, domain.NewAccessDenied("Viewers cannot update task status")
	}
	if user.Role == domain.RoleAdmin && newStatus == domain.TaskStatusArchived {
		return nil, domain.NewAccessDenied("Admins cannot transition tasks to ARCHIVED")
	}

	if !uc.engine.CanUpdateTask(ctx, user, task) {
		uc.publisher.Publish(ctx, ports.AuditEvent{
			UserID:       user.ID,
			Action:       domain.ActionUpdate,
			ResourceType: domain.ResourceTypeTask,
			ResourceID:   "BLOCKED: Unauthorized " + id,
		})
		return nil, domain.NewAccessDenied("Cannot update this task")
	}

	fromStatus := task.Status
	task.SetStatus(newStatus)

	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	uc.publisher.Publish(ctx, ports.AuditEvent{
		UserID:       user.ID,
		Action:       domain.ActionTaskStatusChanged,
		ResourceType: domain.ResourceTypeTask,
		ResourceID:   id,
		Metadata: map[string]string{
			"fromStatus": string(fromStatus),
			"toStatus":   string(newStatus),
		},
	})

	return task, nil
}

// Delete removes a task. Viewers are always refused.
func (uc *TaskUseCase) Delete(ctx context.Context, user domain.User, id string) error {
	task, err := uc.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !uc.engine.CanDeleteTask(ctx, user, task) {
		uc.publisher.Publish(ctx, ports.AuditEvent{
			UserID:       user.ID,
			Action:       domain.ActionDelete,
			ResourceType: domain.ResourceTypeTask,
			ResourceID:   "BLOCKED: Unauthorized " + id,
		})
		return domain.NewAccessDenied("Cannot delete this task")
	}

	if err := uc.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	uc.publisher.Publish(ctx, ports.AuditEvent{
		UserID:       user.ID,
		Action:       domain.ActionDelete,
		ResourceType: domain.ResourceTypeTask,
		ResourceID:   id,
	})

	return nil
}

// GetAuditLogs returns the audit history of one task, newest first, under
// the same visibility rule as reading the task. Refusals here are plain
// read denials, not audited security events.
func (uc *TaskUseCase) GetAuditLogs(ctx context.Context, user domain.User, id string) ([]*domain.AuditLogEntry, error) {
	task, err := uc.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleViewer {
		if task.OrganizationID != user.OrganizationID {
			return nil, domain.NewAccessDenied("Cannot view audit logs for tasks outside your organization")
		}
	} else {
		accessible := uc.scope.AccessibleOrganizationIDs(ctx, user)
		if !containsString(accessible, task.OrganizationID) {
			return nil, domain.NewAccessDenied("Cannot view audit logs for this task")
		}
	}

	entries, err := uc.auditRepo.FindByResource(ctx, domain.ResourceTypeTask, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit logs: %w", err)
	}
	return entries, nil
}

func validateCreateRequest(req CreateTaskRequest) error {
	if req.Title == "" {
		return domain.NewInvalidRequest("title is required")
	}
	if len(req.Title) > 200 {
		return domain.NewInvalidRequest("title must not exceed 200 characters")
	}

	switch req.Category {
	case domain.TaskCategoryWork, domain.TaskCategoryPersonal, domain.TaskCategoryShopping, domain.TaskCategoryOther:
	default:
		return domain.NewInvalidRequest(fmt.Sprintf("invalid category: %s", req.Category))
	}

	switch req.Priority {
	case domain.TaskPriorityLow, domain.TaskPriorityMedium, domain.TaskPriorityHigh:
	default:
		return domain.NewInvalidRequest(fmt.Sprintf("invalid priority: %s", req.Priority))
	}

	return nil
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
