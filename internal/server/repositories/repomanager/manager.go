package repomanager

import (
	"context"
	"database/sql"

	"github.com/fincaforms/fincaforms/internal/dbx"
	"github.com/fincaforms/fincaforms/internal/server/repositories/accounts"
	"github.com/fincaforms/fincaforms/internal/server/repositories/forms"
)

// RepositoryManager vends the repositories of one storage backend.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Forms(db dbx.DBTX) forms.Repository
}
