package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"confreg/utils"
)

// JWTAuthUserMiddleware authenticates requests with a Bearer JWT. Tokens
// revoked through sign-out are rejected via the auth cache.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		client := utils.GetAuthCacheClient()
		if n, err := client.Exists(c.Request.Context(), "revoked:"+utils.HashToken(tokenString)).Result(); err == nil && n > 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		c.Set("userID", userID)
		c.Set("authToken", tokenString)
		c.Next()
	}
}
