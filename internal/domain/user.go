package domain

import "time"

// User represents a registered account. The password hash is never
// serialized; the email doubles as the login handle and is unique.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"creado"`
}

// Identity is the verified id/email claim extracted from a request token.
// It is derived per request and never persisted.
type Identity struct {
	ID    string
	Email string
}
