package accounts

import (
	"time"

	"github.com/adaezeumeh/thriftline-backend/pkg/db/models"
)

// UserDTO is the wire representation of an account. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Location  *string   `json:"location,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionDTO bundles the authenticated user with their freshly minted token.
type SessionDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ToUserDTO maps a stored user onto the wire shape.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Location:  user.Location,
		Phone:     user.Phone,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}
