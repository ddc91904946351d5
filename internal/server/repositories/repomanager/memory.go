package repomanager

import (
	"context"
	"database/sql"

	"github.com/fincaforms/fincaforms/internal/dbx"
	"github.com/fincaforms/fincaforms/internal/server/repositories/accounts"
	"github.com/fincaforms/fincaforms/internal/server/repositories/forms"
)

// MemoryRepositoryManager hands out one shared pair of in-process
// repositories. The db handles passed in are ignored.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
	forms    *forms.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		forms:    forms.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository { return m.accounts }

func (m *MemoryRepositoryManager) Forms(dbx.DBTX) forms.Repository { return m.forms }
