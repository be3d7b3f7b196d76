package domain

// Role is a user's tier within an organization. The three tiers form a
// total order: Owner > Admin > Viewer.
type Role string

const (
	RoleOwner  Role = "Owner"
	RoleAdmin  Role = "Admin"
	RoleViewer Role = "Viewer"
)

// ValidRoles lists every recognized role tier.
var ValidRoles = []Role{RoleOwner, RoleAdmin, RoleViewer}

// IsValid reports whether r is one of the three known tiers.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleViewer:
		return true
	}
	return false
}

// User is an authenticated actor. Role and OrganizationID are authoritative
// claims supplied by the identity layer; the core trusts them as-is.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name,omitempty"`
	Role           Role   `json:"role"`
	OrganizationID string `json:"organization_id"`
}
