package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/service/logger"
)

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id string) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindChildIDs(ctx context.Context, parentID string) ([]string, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func TestAccessibleOrganizationIDs_ViewerGetsHomeOrgOnly(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	resolver := NewOrgScopeResolver(orgRepo, logger.NewNop())

	user := domain.User{ID: "u1", Role: domain.RoleViewer, OrganizationID: "org-a"}

	ids := resolver.AccessibleOrganizationIDs(context.Background(), user)

	assert.Equal(t, []string{"org-a"}, ids)
	orgRepo.AssertNotCalled(t, "FindChildIDs")
}

func TestAccessibleOrganizationIDs_AdminExpandsDescendants(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	orgRepo.On("FindChildIDs", mock.Anything, "org-a").Return([]string{"org-b", "org-c"}, nil)
	orgRepo.On("FindChildIDs", mock.Anything, "org-b").Return([]string{"org-d"}, nil)
	orgRepo.On("FindChildIDs", mock.Anything, "org-c").Return([]string{}, nil)
	orgRepo.On("FindChildIDs", mock.Anything, "org-d").Return([]string{}, nil)

	resolver := NewOrgScopeResolver(orgRepo, logger.NewNop())
	user := domain.User{ID: "u1", Role: domain.RoleAdmin, OrganizationID: "org-a"}

	ids := resolver.AccessibleOrganizationIDs(context.Background(), user)

	assert.ElementsMatch(t, []string{"org-a", "org-b", "org-c", "org-d"}, ids)
	assert.Contains(t, ids, user.OrganizationID)
}

func TestAccessibleOrganizationIDs_CycleSafe(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	orgRepo.On("FindChildIDs", mock.Anything, "org-a").Return([]string{"org-b"}, nil)
	orgRepo.On("FindChildIDs", mock.Anything, "org-b").Return([]string{"org-a"}, nil)

	resolver := NewOrgScopeResolver(orgRepo, logger.NewNop())
	user := domain.User{ID: "u1", Role: domain.RoleOwner, OrganizationID: "org-a"}

	ids := resolver.AccessibleOrganizationIDs(context.Background(), user)

	assert.ElementsMatch(t, []string{"org-a", "org-b"}, ids)
	orgRepo.AssertNumberOfCalls(t, "FindChildIDs", 2)
}

func TestAccessibleOrganizationIDs_LookupFailureFailsClosed(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	orgRepo.On("FindChildIDs", mock.Anything, "org-a").Return(nil, errors.New("connection refused"))

	resolver := NewOrgScopeResolver(orgRepo, logger.NewNop())
	user := domain.User{ID: "u1", Role: domain.RoleAdmin, OrganizationID: "org-a"}

	ids := resolver.AccessibleOrganizationIDs(context.Background(), user)

	assert.Empty(t, ids)
}
