package models

// Role represents user roles in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// User represents an authenticated user. The service runs with a single
// configured administrator account; unauthenticated visitors browse as
// viewers without a User at all.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Role        Role   `json:"role"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleViewer:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the user may perform listing mutations.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsAdmin reports whether the claims belong to an administrator session.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
