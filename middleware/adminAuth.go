package middleware

import (
	"net/http"
	"strings"

	"glambook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware guards the admin surface: it requires a valid
// bearer token carrying the admin role.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.TokenClaims(tokenString)
		if err != nil || role != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminEmail", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
