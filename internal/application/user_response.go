package application

import (
	"github.com/OlexiiMelnik/app-users/internal/domain/entity"
	"github.com/OlexiiMelnik/app-users/pkg/types"
)

// UserResponse is the public representation of a user: the fields safe
// to return to clients. Password and role internals are never included.
type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	BirthDate types.Date `json:"birthDate"`
	Address   string     `json:"address,omitempty"`
	Phone     string     `json:"phone,omitempty"`
}

// ToUserResponse projects a user entity to its public representation.
// Pure and total: defined for every valid user.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: u.BirthDate,
		Address:   u.Address,
		Phone:     u.Phone,
	}
}
