package domain

import (
	"slices"
	"time"
)

type Role string

const (
	RolePlayer    Role = "player"
	RoleCaptain   Role = "captain"
	RoleOrganizer Role = "organizer"
	RoleStaff     Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleCaptain, RoleOrganizer, RoleStaff:
		return true
	}
	return false
}

// User is a directory entry. Credentials and profile data live with the identity provider.
type User struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Roles     []Role    `json:"roles"`
	IsActive  bool      `json:"is_active"`
}

func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.Roles, role)
}
