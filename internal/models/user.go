package models

import "time"

// Roles a user account can hold. Exactly one admin account exists; it is
// seeded at startup and cannot be deleted.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User captures application-facing fields for a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
