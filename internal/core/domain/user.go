package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User models a stored credential: username, bcrypt hash and a single role.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// CanonicalRole maps a requested role onto one of the known roles.
// An empty role defaults to RoleUser; matching is case-insensitive.
func CanonicalRole(role string) (string, bool) {
	switch {
	case strings.TrimSpace(role) == "":
		return RoleUser, true
	case strings.EqualFold(role, RoleAdmin):
		return RoleAdmin, true
	case strings.EqualFold(role, RoleUser):
		return RoleUser, true
	default:
		return "", false
	}
}
