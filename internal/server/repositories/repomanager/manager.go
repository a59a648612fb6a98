package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkarpis/notevault/internal/dbx"
	"github.com/mkarpis/notevault/internal/server/repositories/notes"
	"github.com/mkarpis/notevault/internal/server/repositories/refreshtokens"
	"github.com/mkarpis/notevault/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Notes(db dbx.DBTX) notes.Repository
}
