package usecase

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
)

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

// AuthUseCase authenticates users and issues access tokens. The task core
// never sees tokens; it receives the resolved domain.User explicitly.
type AuthUseCase struct {
	userRepo ports.UserRepository
	password ports.PasswordService
	token    ports.TokenService
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(userRepo ports.UserRepository, password ports.PasswordService, token ports.TokenService) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, password: password, token: token}
}

// Login verifies the credentials and returns a signed access token. Bad
// email and bad password are indistinguishable to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if email == "" || password == "" {
		return nil, domain.NewInvalidRequest("email and password are required")
	}

	user, hash, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewAccessDenied("Invalid email or password")
	}

	if err := uc.password.ComparePassword(hash, password); err != nil {
		return nil, domain.NewAccessDenied("Invalid email or password")
	}

	accessToken, err := uc.token.GenerateAccessToken(ports.TokenClaims{
		UserID:         user.ID,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{AccessToken: accessToken, User: *user}, nil
}

// ResolveUser turns validated token claims back into the full user record.
func (uc *AuthUseCase) ResolveUser(ctx context.Context, claims ports.TokenClaims) (*domain.User, error) {
	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
