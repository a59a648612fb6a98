package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarpis/notevault/internal/server/auth"
)

const userIDKey = "userID"

// requireAuth gates protected routes on the access-token cookie. It is a pure
// verification step: the token store is never consulted here, only the
// signature and expiry are checked.
func (s *Server) requireAuth() gin.HandlerFunc {
	secret := []byte(s.cfg.AccessTokenSecret)

	return func(c *gin.Context) {
		token, err := c.Cookie(accessTokenCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}
