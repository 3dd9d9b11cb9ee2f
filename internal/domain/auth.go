package domain

import "slices"

// Identity is the authenticated caller as asserted by the identity token.
type Identity struct {
	UserID string
	Roles  []Role
}

func (i Identity) HasRole(role Role) bool {
	return slices.Contains(i.Roles, role)
}
