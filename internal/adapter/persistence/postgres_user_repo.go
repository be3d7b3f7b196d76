package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sql.DB) ports.UserRepository {
	return &PostgresUserRepository{db: db}
}

// FindByID retrieves a user by its ID
func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, name, role, organization_id FROM users WHERE id = $1`

	var user domain.User
	var name sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &name, &user.Role, &user.OrganizationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if name.Valid {
		user.Name = name.String
	}

	return &user, nil
}

// FindByEmail retrieves a user by email, returning the stored password hash
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	query := `SELECT id, email, name, role, organization_id, password_hash FROM users WHERE email = $1`

	var user domain.User
	var name sql.NullString
	var hash string

	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &name, &user.Role, &user.OrganizationID, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if name.Valid {
		user.Name = name.String
	}

	return &user, hash, nil
}

// Update applies partial updates to a user
func (r *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $2, name = $3, role = $4, organization_id = $5 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, string(user.Role), user.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
