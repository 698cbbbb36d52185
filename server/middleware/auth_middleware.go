package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	utils "bloodbank-backend/shared/utils/auth"
)

// AuthMiddleware extracts user identity from the JWT token and sets it in
// the request context as (userID, userRole).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "Invalid authorization format. Expected Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(tokenParts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid user ID in token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userRole", claims.Role)

		c.Next()
	}
}

// RequireRole gates a route group to the given roles. The lifecycle service
// re-checks policy on its own operations; this keeps unauthorized traffic
// out of the handlers entirely.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(403, gin.H{"error": "Access denied: insufficient permissions"})
		c.Abort()
	}
}

// CallerID returns the authenticated user's id from the request context.
func CallerID(c *gin.Context) uuid.UUID {
	if id, ok := c.Get("userID"); ok {
		if userID, ok := id.(uuid.UUID); ok {
			return userID
		}
	}
	return uuid.Nil
}

// CallerRole returns the authenticated user's role from the request context.
func CallerRole(c *gin.Context) string {
	return c.GetString("userRole")
}
