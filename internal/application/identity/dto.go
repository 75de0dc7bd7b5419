package identity

import (
	"time"

	"github.com/tshirtshop/backend/internal/domain/identity"
)

// SignupInput contains the fields for creating an account
type SignupInput struct {
	Email    string
	Password string
	Gender   string
	Role     string
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is returned after a successful login
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	UserID    int64  `json:"userId"`
}

// UserResponse represents a user in API responses; the password hash is never exposed
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Gender:    string(u.Gender),
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}
