package domain

import "time"

// Project groups tasks under a single owner. CreatorID is stamped at
// creation and never changes afterwards.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	CreatorID string    `json:"creador"`
	CreatedAt time.Time `json:"creado"`
}

// OwnerID reports the owning user.
func (p Project) OwnerID() string { return p.CreatorID }
