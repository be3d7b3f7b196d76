package ports

import "github.com/taskhive/taskhive/internal/domain"

// TokenClaims is the identity payload carried inside an access token.
type TokenClaims struct {
	UserID         string
	Role           domain.Role
	OrganizationID string
}

// TokenService issues and validates access tokens.
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) error
}
