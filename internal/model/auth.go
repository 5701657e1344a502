package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for a signed-in account. Subject carries the user ID.
type UserClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for account registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role,omitempty"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresIn int64      `json:"expiresIn"` // seconds
	User      PublicUser `json:"user"`
}

// UpdateMoodRequest is the request body for PUT /v1/auth/me/mood
type UpdateMoodRequest struct {
	Mood string `json:"mood"`
}
