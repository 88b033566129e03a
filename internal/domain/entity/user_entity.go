package entity

import (
	"time"

	"github.com/OlexiiMelnik/app-users/pkg/types"
)

// User is the aggregate root for the user domain.
// Password holds the bcrypt hash; the plaintext never reaches this struct.
type User struct {
	ID        int64
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate types.Date
	Address   string
	Phone     string
	Roles     []Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the user's role names as plain strings, for token claims.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return names
}
