// Package user is the user master and the credentials check behind login.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	vo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
)

var ErrUserNotFound = errors.New("user not found")

// PasswordHasher turns a submitted password into its stored form and checks
// a submitted password against a stored one.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

type User struct {
	id        string
	username  string
	password  string
	email     string
	phone     string
	role      vo.Role
	status    shared.ActiveStatus
	createdAt time.Time
	updatedAt time.Time
}

// Profile holds the editable fields. Password is the submitted plain value;
// it is run through the hasher before being stored.
type Profile struct {
	Username string
	Password string
	Email    string
	Phone    string
	Role     vo.Role
	Status   shared.ActiveStatus
}

func (p *Profile) normalize(requirePassword bool) error {
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if requirePassword && p.Password == "" {
		return fmt.Errorf("password is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if p.Role == "" {
		p.Role = vo.RoleUser
	}
	if !p.Role.IsValid() {
		return fmt.Errorf("invalid role: %s", p.Role)
	}
	if p.Status == "" {
		p.Status = shared.StatusActive
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	return nil
}

func NewUser(id string, p Profile, hasher PasswordHasher, now time.Time) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if err := p.normalize(true); err != nil {
		return nil, err
	}
	stored, err := hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &User{
		id:        id,
		username:  strings.TrimSpace(p.Username),
		password:  stored,
		email:     strings.TrimSpace(p.Email),
		phone:     strings.TrimSpace(p.Phone),
		role:      p.Role,
		status:    p.Status,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a stored user; password is already in stored form.
func ReconstructUser(id, username, password, email, phone string, role vo.Role, status shared.ActiveStatus, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		username:  username,
		password:  password,
		email:     email,
		phone:     phone,
		role:      role,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Update replaces the profile. An empty Password keeps the current one.
func (u *User) Update(p Profile, hasher PasswordHasher, now time.Time) error {
	if p.Role == "" {
		p.Role = u.role
	}
	if p.Status == "" {
		p.Status = u.status
	}
	if err := p.normalize(false); err != nil {
		return err
	}
	if p.Password != "" {
		stored, err := hasher.Hash(p.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		u.password = stored
	}
	u.username = strings.TrimSpace(p.Username)
	u.email = strings.TrimSpace(p.Email)
	u.phone = strings.TrimSpace(p.Phone)
	u.role = p.Role
	u.status = p.Status
	u.updatedAt = now
	return nil
}

// CheckPassword compares a submitted password with the stored one.
func (u *User) CheckPassword(password string, hasher PasswordHasher) bool {
	return hasher.Verify(u.password, password)
}

func (u *User) ID() string                  { return u.id }
func (u *User) Username() string            { return u.username }
func (u *User) Password() string            { return u.password }
func (u *User) Email() string               { return u.email }
func (u *User) Phone() string               { return u.phone }
func (u *User) Role() vo.Role               { return u.role }
func (u *User) Status() shared.ActiveStatus { return u.status }
func (u *User) CreatedAt() time.Time        { return u.createdAt }
func (u *User) UpdatedAt() time.Time        { return u.updatedAt }
