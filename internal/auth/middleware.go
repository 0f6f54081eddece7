package auth

import (
	"strings"

	"codeberg.org/algorave/errorhandler/internal/errors"
	"github.com/gin-gonic/gin"
)

// validates JWT tokens and adds user info to context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Respond(c, errors.Unauthorized("authorization header required"))
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			errors.Respond(c, errors.Unauthorized("invalid authorization header format"))
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// validates JWT if present but doesn't require it
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := ValidateJWT(token); err == nil {
				setClaims(c, claims)
			}
		}

		c.Next()
	}
}

// allows only admins through, must run after AuthMiddleware
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			errors.Respond(c, errors.AccessDenied())
			return
		}

		c.Next()
	}
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserEmail, claims.Email)
	c.Set(ContextIsAdmin, claims.IsAdmin)
}
