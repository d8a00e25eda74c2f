package valueobjects

import "fmt"

// Role decides which parts of the application a user reaches.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleViewer Role = "Viewer"
	RoleUser   Role = "User"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleViewer || r == RoleUser
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// NewRole defaults an empty value to User.
func NewRole(s string) (Role, error) {
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
