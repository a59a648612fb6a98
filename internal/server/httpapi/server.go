// Package httpapi exposes the REST API: auth endpoints, note CRUD behind the
// access-token middleware, and a health probe.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkarpis/notevault/internal/logging"
	"github.com/mkarpis/notevault/internal/server/config"
	"github.com/mkarpis/notevault/internal/server/mail"
	"github.com/mkarpis/notevault/internal/server/models"
	"github.com/mkarpis/notevault/internal/server/services"
)

// AuthService is the authentication surface the handlers depend on.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// NoteService is the note CRUD surface the handlers depend on.
type NoteService interface {
	List(ctx context.Context, userID string, page, limit int) ([]*models.Note, error)
	Get(ctx context.Context, userID, id string) (*models.Note, error)
	Create(ctx context.Context, userID, title, imagePath string) (*models.Note, error)
	Update(ctx context.Context, userID, id, title, imagePath string) (*models.Note, error)
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	cfg     *config.Config
	logger  logging.Logger
	auth    AuthService
	notes   NoteService
	mailer  mail.Mailer
	uploads *UploadStore
	engine  *gin.Engine
}

// NewServer wires the handlers and builds the router. mailer may be nil, in
// which case no welcome email is sent.
func NewServer(cfg *config.Config, l logging.Logger, authSvc AuthService, noteSvc NoteService, mailer mail.Mailer) (*Server, error) {
	uploads, err := NewUploadStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		logger:  l.With("module", "httpapi"),
		auth:    authSvc,
		notes:   noteSvc,
		mailer:  mailer,
		uploads: uploads,
	}
	s.engine = s.buildRouter()

	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")

	api.GET("/health", s.handleHealth)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/refresh", s.handleRefresh)
		authGroup.POST("/logout", s.handleLogout)
	}

	noteGroup := api.Group("/notes")
	noteGroup.Use(s.requireAuth())
	{
		noteGroup.GET("", s.handleListNotes)
		noteGroup.GET("/:id", s.handleGetNote)
		noteGroup.POST("", s.handleCreateNote)
		noteGroup.PUT("/:id", s.handleUpdateNote)
		noteGroup.DELETE("/:id", s.handleDeleteNote)
	}

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.HTTPAddr, Handler: s.engine}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.cfg.HTTPAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
