package domain

import "strings"

// Principal is the identity carried by a validated bearer token for the
// lifetime of a single request.
type Principal struct {
	Subject  string
	Username string
	Roles    []string
}

// HasRole reports whether the principal carries role. Role names are
// compared case-insensitively.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// Authorize allows any principal when required is empty, otherwise it
// requires at least one of the listed roles.
func (p Principal) Authorize(required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}
