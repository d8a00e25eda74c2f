package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/upkeep-inc/upkeep/internal/domain/user"
)

const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// NewPasswordHasher picks the hasher for auth.password_scheme.
func NewPasswordHasher(scheme string, bcryptCost int) (user.PasswordHasher, error) {
	switch strings.ToLower(scheme) {
	case "", SchemePlaintext:
		return PlaintextPasswordHasher{}, nil
	case SchemeBcrypt:
		return NewBcryptPasswordHasher(bcryptCost), nil
	default:
		return nil, fmt.Errorf("unknown password scheme: %s", scheme)
	}
}

// PlaintextPasswordHasher stores passwords as submitted. It exists for
// compatibility with user tables that were populated that way.
type PlaintextPasswordHasher struct{}

func (PlaintextPasswordHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextPasswordHasher) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports false for a malformed hash as well as for a mismatch.
func (h *BcryptPasswordHasher) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
