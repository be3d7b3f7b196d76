package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
)

// PostgresOrganizationRepository implements OrganizationRepository using
// PostgreSQL. It doubles as the tenancy store behind the org scope walk.
type PostgresOrganizationRepository struct {
	db *sql.DB
}

// NewPostgresOrganizationRepository creates a new PostgreSQL organization repository
func NewPostgresOrganizationRepository(db *sql.DB) ports.OrganizationRepository {
	return &PostgresOrganizationRepository{db: db}
}

// FindByID retrieves an organization by its ID
func (r *PostgresOrganizationRepository) FindByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `SELECT id, name, parent_id, created_at FROM organizations WHERE id = $1`

	var org domain.Organization
	var parentID sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(&org.ID, &org.Name, &parentID, &org.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrOrgNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if parentID.Valid {
		org.ParentID = &parentID.String
	}

	return &org, nil
}

// FindChildIDs returns the ids of direct child organizations
func (r *PostgresOrganizationRepository) FindChildIDs(ctx context.Context, parentID string) ([]string, error) {
	query := `SELECT id FROM organizations WHERE parent_id = $1`

	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child organizations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan organization id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}

	return ids, nil
}

// Update applies partial updates to an organization
func (r *PostgresOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	query := `UPDATE organizations SET name = $2, parent_id = $3 WHERE id = $1`

	var parentID interface{}
	if org.ParentID != nil {
		parentID = *org.ParentID
	}

	result, err := r.db.ExecContext(ctx, query, org.ID, org.Name, parentID)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrOrgNotFound
	}

	return nil
}
