package rbac

import (
	"context"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/ports"
	"github.com/taskhive/taskhive/internal/service/logger"
)

// OrgScopeResolver expands a user's visibility into the set of organization
// ids the user may operate within: the home organization plus, for Admin
// and Owner, every descendant reachable in the tenancy tree.
type OrgScopeResolver struct {
	orgRepo ports.OrganizationRepository
	log     logger.Logger
}

// NewOrgScopeResolver creates a new org scope resolver
func NewOrgScopeResolver(orgRepo ports.OrganizationRepository, log logger.Logger) *OrgScopeResolver {
	return &OrgScopeResolver{orgRepo: orgRepo, log: log}
}

// AccessibleOrganizationIDs returns the user's accessible organization set.
// Viewers get exactly their home organization. For Admin and Owner the walk
// is self-inclusive and transitive, with a visited set guarding against
// malformed cyclic data. A tenancy lookup failure yields an empty set
// rather than an error, so callers uniformly fail closed to "no access".
func (r *OrgScopeResolver) AccessibleOrganizationIDs(ctx context.Context, user domain.User) []string {
	if user.Role == domain.RoleViewer {
		return []string{user.OrganizationID}
	}

	visited := map[string]bool{}
	var result []string

	queue := []string{user.OrganizationID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		result = append(result, id)

		children, err := r.orgRepo.FindChildIDs(ctx, id)
		if err != nil {
			r.log.Warn(ctx, "tenancy lookup failed, treating scope as empty", map[string]interface{}{
				"organization_id": id,
				"error":           err.Error(),
			})
			return []string{}
		}
		queue = append(queue, children...)
	}

	return result
}
