// Package authz implements the ownership model: a single relation between
// an authenticated identity and the creator recorded on an entity. There
// are no roles and no delegation.
package authz

import "github.com/paulita842/uptaskgraphql/internal/domain"

// Owned is any entity that records its creating user.
type Owned interface {
	OwnerID() string
}

// RequireAuthenticated asserts that the request carries a verified
// identity. Every service operation calls this before touching the
// ownership check, so RequireOwner never compares against a missing
// identity.
func RequireAuthenticated(identity *domain.Identity) (domain.Identity, error) {
	if identity == nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return *identity, nil
}

// RequireOwner asserts that identity created the entity. Entity existence
// is the caller's problem: lookups precede this check everywhere, so the
// entity handed in is always a real stored row.
func RequireOwner(identity domain.Identity, entity Owned) error {
	if entity.OwnerID() != identity.ID {
		return domain.ErrForbidden
	}
	return nil
}
