package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salonflow/utils"
)

// StaffAuthMiddleware guards the staff-only booking routes. Tokens are issued
// by the admin surface; this side only validates them.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		staffID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}
		c.Set("staffID", staffID)
		c.Next()
	}
}
