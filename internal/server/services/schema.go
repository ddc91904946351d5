package services

import (
	"context"
	"database/sql"

	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/repositories/repomanager"
)

// SchemaService is the per-account dynamic schema registry.
type SchemaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSchemaService(db *sql.DB, m repomanager.RepositoryManager) *SchemaService {
	return &SchemaService{db: db, repomanager: m}
}

// GetSchema returns the schema of the account registered under email.
// An unset schema is returned as an empty mapping.
func (s *SchemaService) GetSchema(ctx context.Context, email string) (fields.Map, error) {
	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError("error fetching schema", err)
	}
	return account.Schema.Clone(), nil
}

// MergeSchema shallow-merges partial into the account's schema and stores
// the result: keys in partial overwrite, all other keys are kept.
//
// The read and the write are two separate store operations. Concurrent
// merges for the same account race and the last write wins for the whole
// schema, so updates to disjoint keys can be lost. Callers that need
// per-account atomicity must serialize their calls.
func (s *SchemaService) MergeSchema(ctx context.Context, email string, partial fields.Map) (fields.Map, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError("error fetching schema", err)
	}

	merged := account.Schema.Merge(partial)

	if err := repo.UpdateSchema(ctx, account.ID, merged); err != nil {
		return nil, storeError("error updating schema", err)
	}
	return merged, nil
}
