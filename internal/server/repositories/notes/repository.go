// Package notes declares the repository contract for user-owned notes.
//
// Every operation that addresses a single note takes the pair (id, userID)
// so ownership scoping cannot diverge between call sites: a note belonging
// to another user is indistinguishable from a missing one.
package notes

import (
	"context"

	"github.com/mkarpis/notevault/internal/server/models"
)

type Repository interface {
	// Create inserts a new note. A duplicate title yields common.ErrConflict.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)

	// GetOwned returns the note with the given id owned by userID, or
	// common.ErrNotFound.
	GetOwned(ctx context.Context, id, userID string) (*models.Note, error)

	// ListByUser returns up to limit notes owned by userID, skipping offset.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Note, error)

	// Update persists title, slug, and image of the note identified by
	// (note.ID, note.UserID). Returns common.ErrNotFound when no such note
	// exists and common.ErrConflict on a duplicate title.
	Update(ctx context.Context, note *models.Note) (*models.Note, error)

	// Delete removes the note identified by (id, userID), or returns
	// common.ErrNotFound.
	Delete(ctx context.Context, id, userID string) error
}
