package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// gin context keys set by the middleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextIsAdmin   = "is_admin"
)

// represents JWT claims
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
