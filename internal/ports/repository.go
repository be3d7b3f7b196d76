package ports

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
)

// TaskRepository defines the interface for task persistence
type TaskRepository interface {
	// Create saves a new task
	Create(ctx context.Context, task *domain.Task) error

	// FindByID retrieves a task by its ID
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindByOrganization retrieves tasks belonging to a single organization
	FindByOrganization(ctx context.Context, organizationID string) ([]*domain.Task, error)

	// FindByOrganizations retrieves tasks whose organization is in the given set
	FindByOrganizations(ctx context.Context, organizationIDs []string) ([]*domain.Task, error)

	// Update updates an existing task
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task
	Delete(ctx context.Context, id string) error
}

// OrganizationRepository defines the interface for tenancy lookups
type OrganizationRepository interface {
	// FindByID retrieves an organization by its ID
	FindByID(ctx context.Context, id string) (*domain.Organization, error)

	// FindChildIDs returns the ids of direct child organizations
	FindChildIDs(ctx context.Context, parentID string) ([]string, error)

	// Update applies partial updates to an organization
	Update(ctx context.Context, org *domain.Organization) error
}

// UserRepository defines the interface for user lookups
type UserRepository interface {
	// FindByID retrieves a user by its ID
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail retrieves a user by email, returning the stored password hash
	FindByEmail(ctx context.Context, email string) (*domain.User, string, error)

	// Update applies partial updates to a user
	Update(ctx context.Context, user *domain.User) error
}

// AuditRepository defines the interface for append-only audit persistence
type AuditRepository interface {
	// Create appends a new audit entry
	Create(ctx context.Context, entry *domain.AuditLogEntry) error

	// FindByResource retrieves entries for one resource, newest first
	FindByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLogEntry, error)

	// FindAll retrieves entries across all resources, newest first
	FindAll(ctx context.Context, limit int) ([]*domain.AuditLogEntry, error)
}
