// Package services implements the application services sitting between the
// HTTP layer and the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkarpis/notevault/internal/common"
	"github.com/mkarpis/notevault/internal/dbx"
	"github.com/mkarpis/notevault/internal/server/auth"
	"github.com/mkarpis/notevault/internal/server/config"
	"github.com/mkarpis/notevault/internal/server/models"
	"github.com/mkarpis/notevault/internal/server/repositories/repomanager"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, credential checks, and the
// issue/rotate/revoke lifecycle of token pairs.
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	accessSecret                 []byte
	refreshSecret                []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		accessSecret:                 []byte(cfg.AccessTokenSecret),
		refreshSecret:                []byte(cfg.RefreshTokenSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a user with a bcrypt-hashed password. A duplicate email
// yields a Conflict error.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {

	if email == "" || password == "" {
		return nil, common.Validation("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.Conflict("email already exists")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and, on success, issues a fresh token pair.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {

	if email == "" || password == "" {
		return nil, common.Validation("email and password are required")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Unauthorized("incorrect email or password")
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.Unauthorized("incorrect email or password")
	}

	return s.generateTokenPair(ctx, s.db, user.ID)
}

// Refresh exchanges a valid refresh token for a new pair, rotating the
// server-side record. A token that fails verification, or that is no longer
// the user's current token, yields Unauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {

	if refreshToken == "" {
		return nil, common.Unauthorized("invalid refresh token")
	}

	userID, err := auth.GetUserIDFromToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, common.Unauthorized("invalid refresh token")
	}

	repo := s.repomanager.RefreshTokens(s.db)

	if _, err := repo.Find(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	var tokenPair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		tokenPair, err = s.generateTokenPair(ctx, tx, userID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// Logout revokes the stored refresh token. An unknown or empty token is a
// no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {

	if refreshToken == "" {
		return nil
	}

	repo := s.repomanager.RefreshTokens(s.db)

	if err := repo.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}

	return nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, db dbx.DBTX, userID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.accessSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := auth.GenerateToken(userID, s.refreshSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	if err := s.repomanager.RefreshTokens(db).Upsert(ctx, userID, refreshToken); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
