package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pick-time/carpool-backend/internal/token"
)

// IdentityKey for storing the verified token identity in Gin context
const IdentityKey = "identity"

// Auth verifies the bearer credential on protected routes. A missing
// header or missing token is 401; a token that fails verification
// (bad signature, expired) is 403.
func Auth(signer *token.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		id, err := signer.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			GetLogger(c).Warn("token verification failed", "error", err)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(IdentityKey, id)
		c.Next()
	}
}

// GetIdentity extracts the verified identity stored by Auth.
func GetIdentity(c *gin.Context) (token.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return token.Identity{}, false
	}
	id, ok := v.(token.Identity)
	return id, ok
}
