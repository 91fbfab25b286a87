package auth

import (
	"github.com/gachpala/shop-backend/internal/users"
)

// SignupRequest captures the fields required to create an account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult contains the session token and user produced by a successful login.
type LoginResult struct {
	Token string
	User  *users.UserDTO
}
