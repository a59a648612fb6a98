package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkarpis/notevault/internal/common"
	"github.com/mkarpis/notevault/internal/dbx"
	"github.com/mkarpis/notevault/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	query :=
		`INSERT INTO notes (title, slug, image, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Slug, note.Image, note.UserID).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, classify(err)
	}

	return note, nil
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*models.Note, error) {
	query :=
		`SELECT id, title, slug, image, user_id, created_at, updated_at FROM notes
		 WHERE id = $1 AND user_id = $2
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&note.ID, &note.Title, &note.Slug, &note.Image, &note.UserID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, classify(err)
	}

	return note, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Note, error) {
	query :=
		`SELECT id, title, slug, image, user_id, created_at, updated_at FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Title, &note.Slug, &note.Image, &note.UserID, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return notes, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`UPDATE notes SET title = $1, slug = $2, image = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Slug, note.Image, note.ID, note.UserID).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, classify(err)
	}

	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query :=
		`DELETE FROM notes
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return classify(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// classify maps driver errors to the shared sentinels. A malformed uuid in
// the id position behaves like a missing row rather than a server fault.
func classify(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return common.ErrConflict
		case pgerrcode.InvalidTextRepresentation:
			return common.ErrNotFound
		}
	}

	return fmt.Errorf("db error: %w", err)
}
