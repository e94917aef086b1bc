package types

import (
	"github.com/go-playground/validator/v10"
)

// SignupRequest represents the request to register a new account.
type SignupRequest struct {
	Fullname      string `json:"fullname" validate:"required,min=1"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone,omitempty"`
	Password      string `json:"password" validate:"required,min=8"`
	SkillCategory string `json:"skill_category,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents the user profile the auth endpoints return.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

// TokenResponse represents the login/signup response with the bearer token
// and the user profile.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
