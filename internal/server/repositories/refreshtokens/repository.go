// Package refreshtokens declares the server-side repository contract for the
// single live refresh token tracked per user.
package refreshtokens

import (
	"context"

	"github.com/mkarpis/notevault/internal/server/models"
)

// Repository defines operations for storing, retrieving, and revoking
// refresh tokens. At most one row exists per user.
type Repository interface {
	// Upsert stores token as the current refresh token for userID,
	// overwriting any previous value.
	Upsert(ctx context.Context, userID string, token string) error

	// Find looks up a refresh token row by its token string.
	// Implementations return common.ErrNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string. Deleting a
	// non-existent token is not an error.
	Delete(ctx context.Context, token string) error
}
