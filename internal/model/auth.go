package model

import "github.com/golang-jwt/jwt/v5"

// Role identifies what a user may do in the review workflow
type Role string

const (
	RoleClinician Role = "clinician"
	RoleReviewer  Role = "reviewer"
)

// UserClaims are JWT claims for clinician and reviewer tokens
type UserClaims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}
