package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/brainly/internal/dbx"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/contents"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/sharelinks"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Contents(db dbx.DBTX) contents.Repository
	ShareLinks(db dbx.DBTX) sharelinks.Repository
}
