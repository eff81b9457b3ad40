// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// AuthMiddleware creates JWT authentication middleware
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		// Extract token from header
		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		// Validate access token
		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// Store user information in context
		c.Set("account", claims.Account)
		c.Set("username", claims.Username)
		c.Set("level", claims.Level)
		c.Set("token_claims", claims)

		c.Next()
	}
}

// RequireStaff ensures the caller holds at least staff privileges.
func RequireStaff() gin.HandlerFunc {
	return requireLevel(user.LevelStaff)
}

// RequireAdmin ensures the caller holds admin privileges.
func RequireAdmin() gin.HandlerFunc {
	return requireLevel(user.LevelAdmin)
}

func requireLevel(min int) gin.HandlerFunc {
	return func(c *gin.Context) {
		level, exists := c.Get("level")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if level.(int) < min {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient privileges",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetAccountFromContext extracts the caller's account from gin context
func GetAccountFromContext(c *gin.Context) (string, bool) {
	account, exists := c.Get("account")
	if !exists {
		return "", false
	}
	return account.(string), true
}

// GetLevelFromContext extracts the caller's privilege level from gin context
func GetLevelFromContext(c *gin.Context) (int, bool) {
	level, exists := c.Get("level")
	if !exists {
		return 0, false
	}
	return level.(int), true
}
