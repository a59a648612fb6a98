package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarpis/notevault/internal/common"
	"github.com/mkarpis/notevault/internal/server/services"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// respondError is the single place domain errors become HTTP responses.
// Unclassified errors are logged and surface as an opaque 500.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err.Error())
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// setAuthCookies installs both token cookies, http-only, scoped to the whole
// site.
func (s *Server) setAuthCookies(c *gin.Context, pair *services.TokenPair) {
	c.SetCookie(accessTokenCookie, pair.AccessToken, int(s.cfg.AccessTokenValidityDuration.Seconds()), "/", "", false, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken, int(s.cfg.RefreshTokenValidityDuration.Seconds()), "/", "", false, true)
}

func (s *Server) clearAuthCookies(c *gin.Context) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", false, true)
}
