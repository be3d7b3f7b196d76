package rbac

import "github.com/taskhive/taskhive/internal/domain"

// HasRequiredRole reports whether the actual role satisfies the required
// set, either by direct membership or by seniority: Owner covers Admin and
// Viewer requirements, Admin covers Viewer requirements.
func HasRequiredRole(actual domain.Role, required []domain.Role) bool {
	for _, r := range required {
		if r == actual {
			return true
		}
	}

	if actual == domain.RoleOwner {
		for _, r := range required {
			if r == domain.RoleAdmin || r == domain.RoleViewer {
				return true
			}
		}
	}

	if actual == domain.RoleAdmin {
		for _, r := range required {
			if r == domain.RoleViewer {
				return true
			}
		}
	}

	return false
}
