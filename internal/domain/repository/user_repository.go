package repository

import (
	"context"
	"errors"

	"github.com/OlexiiMelnik/app-users/internal/domain/entity"
	"github.com/OlexiiMelnik/app-users/pkg/types"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert violates the users
	// email uniqueness constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the persistence capabilities the service layer
// depends on. Implementations must never expose store internals.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// DeleteByID removes a user by id. Deleting an unknown id is a no-op.
	DeleteByID(ctx context.Context, id int64) error
	// FindByBirthDateRange returns one page of users whose birth date lies
	// in [from, to] inclusive. Ordering is store-determined unless the
	// pageable carries a sort.
	FindByBirthDateRange(ctx context.Context, from, to types.Date, p Pageable) ([]entity.User, error)
}

// RoleRepository resolves role reference data.
type RoleRepository interface {
	GetByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
}
