package domain

import "time"

// Task belongs to a user and references a project as a grouping key.
// Estado is the completion flag; it defaults to false on creation.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	ProjectID string    `json:"proyecto"`
	CreatorID string    `json:"creador"`
	Estado    bool      `json:"estado"`
	CreatedAt time.Time `json:"creado"`
}

// OwnerID reports the owning user.
func (t Task) OwnerID() string { return t.CreatorID }
