package domain

import "time"

// Organization is a tenancy node. ParentID links child organizations to
// their parent, forming a tree (or forest). The core only reads
// organizations; they are managed by external tenancy tooling.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
