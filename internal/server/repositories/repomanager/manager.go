package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/photodrop/internal/dbx"
	"github.com/dmitrijs2005/photodrop/internal/server/repositories/photos"
	"github.com/dmitrijs2005/photodrop/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/photodrop/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// several of them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Photos(db dbx.DBTX) photos.Repository
}
