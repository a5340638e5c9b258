package model

import "strings"

// Role is the authorization level attached to a user account.  It is parsed
// once at the JWT boundary so handlers and repositories compare typed values
// instead of raw claim strings.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a raw role string into a Role.  Unknown or empty
// values fall back to RoleUser so a malformed claim can never grant
// admin access.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUser
	}
}

// IsAdmin reports whether the role carries administrative rights.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// String returns the role's claim representation.
func (r Role) String() string { return string(r) }
