package domain

import "github.com/google/uuid"

// Identity is the authenticated caller, built once per request from a
// verified token and passed explicitly into every service method.
type Identity struct {
	subject string
	roles   []string
}

// NewIdentity constructs an immutable Identity. The subject is the string
// form of the authenticated user's id.
func NewIdentity(subject string, roles []string) Identity {
	rs := make([]string, len(roles))
	copy(rs, roles)
	return Identity{subject: subject, roles: rs}
}

// Subject returns the authenticated user id in string form.
func (i Identity) Subject() string {
	return i.subject
}

// Roles returns a copy of the granted roles.
func (i Identity) Roles() []string {
	rs := make([]string, len(i.roles))
	copy(rs, i.roles)
	return rs
}

// HasAdminRights reports whether any granted role is ADMIN. An identity
// with no roles at all is never an admin.
func (i Identity) HasAdminRights() bool {
	for _, r := range i.roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// HasRightsOrIsAdmin reports whether the identity is the user identified
// by target, or an admin.
func (i Identity) HasRightsOrIsAdmin(target uuid.UUID) bool {
	return i.subject == target.String() || i.HasAdminRights()
}
