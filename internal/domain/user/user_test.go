package user

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	vo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
)

// upperHasher stores passwords upper-cased so tests can tell stored from submitted.
type upperHasher struct{}

func (upperHasher) Hash(p string) (string, error) { return strings.ToUpper(p), nil }
func (upperHasher) Verify(stored, p string) bool  { return stored == strings.ToUpper(p) }

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func profile() Profile {
	return Profile{Username: "user2", Password: "user123", Email: "user2@example.com", Phone: "9876543210"}
}

func TestNewUserDefaults(t *testing.T) {
	u, err := NewUser("usr_1", profile(), upperHasher{}, now)
	require.NoError(t, err)

	assert.Equal(t, vo.RoleUser, u.Role())
	assert.Equal(t, shared.StatusActive, u.Status())
	assert.Equal(t, "USER123", u.Password())
	assert.True(t, u.CheckPassword("user123", upperHasher{}))
	assert.False(t, u.CheckPassword("user124", upperHasher{}))
}

func TestNewUserRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"username", func(p *Profile) { p.Username = "" }},
		{"password", func(p *Profile) { p.Password = "" }},
		{"email", func(p *Profile) { p.Email = " " }},
		{"phone", func(p *Profile) { p.Phone = "" }},
		{"role", func(p *Profile) { p.Role = "Owner" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile()
			tt.mutate(&p)
			_, err := NewUser("usr_1", p, upperHasher{}, now)
			assert.Error(t, err)
		})
	}
}

func TestUpdateKeepsPasswordWhenBlank(t *testing.T) {
	u, err := NewUser("usr_1", profile(), upperHasher{}, now)
	require.NoError(t, err)

	p := profile()
	p.Password = ""
	p.Role = vo.RoleViewer
	require.NoError(t, u.Update(p, upperHasher{}, now.Add(time.Hour)))

	assert.Equal(t, vo.RoleViewer, u.Role())
	assert.True(t, u.CheckPassword("user123", upperHasher{}))
}

func TestNewRole(t *testing.T) {
	r, err := vo.NewRole("")
	require.NoError(t, err)
	assert.Equal(t, vo.RoleUser, r)

	r, err = vo.NewRole("Admin")
	require.NoError(t, err)
	assert.True(t, r.IsAdmin())

	_, err = vo.NewRole("admin")
	assert.Error(t, err)
}
