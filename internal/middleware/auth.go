package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pulse-hq/pulse/internal/utils"
)

// Token cookie names shared with the auth handlers.
const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextJTI      = "jti"
)

// RevocationChecker reports whether a token's jti appears in the revocation
// ledger. A token can become invalid mid-lifetime, so this runs on every
// protected request, not only at login.
type RevocationChecker interface {
	IsBlacklisted(jti string) bool
}

// ExtractAccessToken pulls the access token from the cookie, falling back to
// the Authorization header for non-browser clients.
func ExtractAccessToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessCookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthRequired validates the caller's access token and gates on the
// revocation ledger.
func AuthRequired(checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractAccessToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims.TokenType != utils.TokenTypeAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token"})
			c.Abort()
			return
		}

		if checker.IsBlacklisted(claims.JTI()) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token revoked"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextJTI, claims.JTI())

		c.Next()
	}
}

// AdminRequired checks for admin role; must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUsername gets the current username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsername); exists {
		return username.(string)
	}
	return ""
}

// GetRole gets the current user role from context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}
