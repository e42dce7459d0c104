package domain

import "github.com/google/uuid"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User models a registered account. The password is held only as a
// one-way hash and is never serialized outward.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
}

// Scrubbed returns a copy of the user with the password hash removed.
func (u User) Scrubbed() User {
	u.PasswordHash = ""
	return u
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
