package middleware

import (
	"context"
	"net/http"
	"strings"

	"qa-warehouse-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate.
const (
	KeyUserID    = "user_id"
	KeyUserRole  = "user_role"
	KeyUserName  = "user_name"
	KeySessionID = "session_id"
)

// SessionValidator rejects tokens whose session was revoked.
type SessionValidator interface {
	ActiveSession(ctx context.Context, userID, sessionID string) error
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header || token == "" {
		return "", false
	}
	return token, true
}

// Authenticate verifies the JWT and puts the caller's identity into the context.
func Authenticate(issuer *auth.Issuer, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if sessions != nil {
			if err := sessions.ActiveSession(c.Request.Context(), claims.UserID, claims.SessionID); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has been revoked"})
				return
			}
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUserRole, claims.Role)
		c.Set(KeyUserName, claims.Name)
		c.Set(KeySessionID, claims.SessionID)

		c.Next()
	}
}

// Authorize allows the request through only for the listed roles.
func Authorize(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(KeyUserRole)
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User role not found in context"})
			return
		}

		for _, role := range allowedRoles {
			if role == userRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}
