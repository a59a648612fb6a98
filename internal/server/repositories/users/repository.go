// Package users declares the repository contract for persisted user accounts.
package users

import (
	"context"

	"github.com/mkarpis/notevault/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. A duplicate email yields common.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
