package models

import "fmt"

// Profile describes the authenticated administrator (GET /api/auth/me).
// The endpoint may return more fields; only these are used.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Label is the header line shown once the profile is known.
func (p Profile) Label() string {
	return fmt.Sprintf("Admin: %s (%s)", p.Username, p.Email)
}
