package dto

import "github.com/lipinotes/backend/internal/models"

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  models.Account `json:"user"`
}

// Profile is the public slice of an account returned by /api/get_profile.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
