package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Minute)
	require.NoError(t, err)

	claims := ports.TokenClaims{
		UserID:         "user-1",
		Role:           domain.RoleAdmin,
		OrganizationID: "org-a",
	}

	tokenString, err := svc.GenerateAccessToken(claims)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := svc.ValidateAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, claims, *parsed)
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", time.Minute)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService("secret-one", time.Minute)
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-two", time.Minute)
	require.NoError(t, err)

	tokenString, err := issuer.GenerateAccessToken(ports.TokenClaims{
		UserID: "user-1", Role: domain.RoleViewer, OrganizationID: "org-a",
	})
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Minute)
	require.NoError(t, err)
	svc.ttl = -time.Minute

	tokenString, err := svc.GenerateAccessToken(ports.TokenClaims{
		UserID: "user-1", Role: domain.RoleOwner, OrganizationID: "org-a",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_RejectsUnknownRole(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Minute)
	require.NoError(t, err)

	tokenString, err := svc.GenerateAccessToken(ports.TokenClaims{
		UserID: "user-1", Role: domain.Role("Superuser"), OrganizationID: "org-a",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
