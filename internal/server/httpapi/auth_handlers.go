package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkarpis/notevault/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, common.Validation("invalid request body"))
		return
	}

	user, err := s.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID})

	if s.mailer != nil {
		go s.sendWelcome(user.Email)
	}
}

// sendWelcome runs after the register response has been written. Delivery
// failures never affect the registration outcome, they are only logged.
func (s *Server) sendWelcome(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.mailer.SendWelcome(ctx, email); err != nil {
		s.logger.Warn(ctx, "welcome email failed", "email", email, "error", err.Error())
		return
	}
	s.logger.Info(ctx, "welcome email sent", "email", email)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, common.Validation("invalid request body"))
		return
	}

	pair, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

func (s *Server) handleRefresh(c *gin.Context) {
	token, err := c.Cookie(refreshTokenCookie)
	if err != nil || token == "" {
		s.respondError(c, common.Unauthorized("invalid refresh token"))
		return
	}

	pair, err := s.auth.Refresh(c.Request.Context(), token)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

func (s *Server) handleLogout(c *gin.Context) {
	token, _ := c.Cookie(refreshTokenCookie)

	if err := s.auth.Logout(c.Request.Context(), token); err != nil {
		s.respondError(c, err)
		return
	}

	s.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "user logged out successfully"})
}
