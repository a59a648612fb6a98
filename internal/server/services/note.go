package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"

	"github.com/mkarpis/notevault/internal/common"
	"github.com/mkarpis/notevault/internal/filex"
	"github.com/mkarpis/notevault/internal/server/models"
	"github.com/mkarpis/notevault/internal/server/repositories/repomanager"
)

const (
	DefaultPage  = 1
	DefaultLimit = 4

	titleMinLen = 3
	titleMaxLen = 32
)

// NoteService implements CRUD over user-owned notes, including the lifecycle
// of their uploaded image files.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// List returns one page of the caller's notes. Out-of-range page or limit
// values fall back to the defaults.
func (s *NoteService) List(ctx context.Context, userID string, page, limit int) ([]*models.Note, error) {

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	repo := s.repomanager.Notes(s.db)

	notes, err := repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	return notes, nil
}

// Get returns the caller's note with the given id.
func (s *NoteService) Get(ctx context.Context, userID, id string) (*models.Note, error) {

	repo := s.repomanager.Notes(s.db)

	note, err := repo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("no note for this id: %s", id)
		}
		return nil, fmt.Errorf("error fetching note: %w", err)
	}

	return note, nil
}

// Create stores a new note owned by userID. imagePath, when non-empty, is
// the relative path of an already-saved upload.
func (s *NoteService) Create(ctx context.Context, userID, title, imagePath string) (*models.Note, error) {

	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Notes(s.db)

	note, err := repo.Create(ctx, &models.Note{
		Title:  title,
		Slug:   slug.Make(title),
		Image:  imagePath,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.Conflict("title already exists")
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return note, nil
}

// Update applies a partial update. A new title regenerates the slug; a new
// image replaces (and removes) the previous file. When the note does not
// exist for the caller, the freshly uploaded file is removed so no orphan
// is left behind.
func (s *NoteService) Update(ctx context.Context, userID, id, title, imagePath string) (*models.Note, error) {

	repo := s.repomanager.Notes(s.db)

	note, err := repo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			if imagePath != "" {
				if _, rmErr := filex.RemoveIfExists(imagePath); rmErr != nil {
					return nil, fmt.Errorf("error removing uploaded file: %w", rmErr)
				}
			}
			return nil, common.NotFound("no note for this id: %s", id)
		}
		return nil, fmt.Errorf("error fetching note: %w", err)
	}

	if title != "" {
		title, err = validateTitle(title)
		if err != nil {
			return nil, err
		}
		note.Title = title
		note.Slug = slug.Make(title)
	}

	if imagePath != "" {
		if note.Image != "" {
			if _, err := filex.RemoveIfExists(note.Image); err != nil {
				return nil, fmt.Errorf("error removing old image: %w", err)
			}
		}
		note.Image = imagePath
	}

	updated, err := repo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.Conflict("title already exists")
		}
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("no note for this id: %s", id)
		}
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	return updated, nil
}

// Delete removes the caller's note and its image file, if any.
func (s *NoteService) Delete(ctx context.Context, userID, id string) error {

	repo := s.repomanager.Notes(s.db)

	note, err := repo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("no note for this id: %s", id)
		}
		return fmt.Errorf("error fetching note: %w", err)
	}

	if note.Image != "" {
		if _, err := filex.RemoveIfExists(note.Image); err != nil {
			return fmt.Errorf("error removing image: %w", err)
		}
	}

	if err := repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("no note for this id: %s", id)
		}
		return fmt.Errorf("error deleting note: %w", err)
	}

	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)

	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return "", common.Validation("title is required")
	case n < titleMinLen:
		return "", common.Validation("title is too short")
	case n > titleMaxLen:
		return "", common.Validation("title is too long")
	}

	return title, nil
}
