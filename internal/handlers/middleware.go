package handlers

import (
	"net/http"

	"creator-pulse/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireAuth validates the bearer token and stores the creator ID in the
// request context under "creator_id".
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		creatorID, ok := tokens.ValidateToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		c.Set("creator_id", creatorID)
		c.Next()
	}
}
