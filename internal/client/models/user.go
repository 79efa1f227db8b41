// Package models defines the records exchanged with the admin API.
package models

import (
	"cmp"
	"slices"

	"github.com/dmitrijs2005/dndadmin/internal/timex"
)

// DefaultRoleOptions are the roles offered to the operator when no other
// set is configured. The server is the authority on which values it
// accepts; the client only uses this list to validate input.
var DefaultRoleOptions = []string{"User", "DM", "Admin"}

// User is one account as listed by GET /api/admin/users.
type User struct {
	// ID is unique and assigned by the server.
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	// Role is one of the server's role names (User, DM, Admin by default).
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`

	CreatedAt timex.Time `json:"createdAt"`
	// LastLoginAt is nil for accounts that never logged in.
	LastLoginAt *timex.Time `json:"lastLoginAt,omitempty"`
}

// StatusLabel renders IsActive for display.
func (u User) StatusLabel() string {
	if u.IsActive {
		return "active"
	}
	return "inactive"
}

// SortByID orders users by ascending ID in place.
func SortByID(users []User) {
	slices.SortStableFunc(users, func(a, b User) int { return cmp.Compare(a.ID, b.ID) })
}

// FindByID returns the user with the given id.
func FindByID(users []User, id int) (User, bool) {
	i := slices.IndexFunc(users, func(u User) bool { return u.ID == id })
	if i < 0 {
		return User{}, false
	}
	return users[i], true
}
