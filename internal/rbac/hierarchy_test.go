package rbac

import (
	"testing"

	"github.com/taskhive/taskhive/internal/domain"
)

func TestHasRequiredRole_Reflexive(t *testing.T) {
	for _, role := range domain.ValidRoles {
		if !HasRequiredRole(role, []domain.Role{role}) {
			t.Errorf("Expected %s to satisfy a set containing itself", role)
		}
	}
}

func TestHasRequiredRole_OwnerDominatesAll(t *testing.T) {
	tests := []struct {
		name     string
		required []domain.Role
	}{
		{"admin only", []domain.Role{domain.RoleAdmin}},
		{"viewer only", []domain.Role{domain.RoleViewer}},
		{"admin and viewer", []domain.Role{domain.RoleAdmin, domain.RoleViewer}},
	}

	for _, tt := range tests {
		if !HasRequiredRole(domain.RoleOwner, tt.required) {
			t.Errorf("Expected Owner to satisfy %s", tt.name)
		}
	}
}

func TestHasRequiredRole_AdminDominatesViewerOnly(t *testing.T) {
	if !HasRequiredRole(domain.RoleAdmin, []domain.Role{domain.RoleViewer}) {
		t.Error("Expected Admin to satisfy a Viewer requirement")
	}
	if HasRequiredRole(domain.RoleAdmin, []domain.Role{domain.RoleOwner}) {
		t.Error("Expected Admin not to satisfy an Owner requirement")
	}
}

func TestHasRequiredRole_ViewerDominatesNothing(t *testing.T) {
	if HasRequiredRole(domain.RoleViewer, []domain.Role{domain.RoleAdmin}) {
		t.Error("Expected Viewer not to satisfy an Admin requirement")
	}
	if HasRequiredRole(domain.RoleViewer, []domain.Role{domain.RoleOwner}) {
		t.Error("Expected Viewer not to satisfy an Owner requirement")
	}
	if HasRequiredRole(domain.RoleViewer, []domain.Role{domain.RoleOwner, domain.RoleAdmin}) {
		t.Error("Expected Viewer not to satisfy an Owner/Admin requirement")
	}
}

func TestHasRequiredRole_EmptyRequiredSet(t *testing.T) {
	for _, role := range domain.ValidRoles {
		if HasRequiredRole(role, nil) {
			t.Errorf("Expected %s not to satisfy an empty requirement set", role)
		}
	}
}
