package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/fincaforms/fincaforms/internal/server/repositories/repomanager"
)

// Profile carries the optional descriptive fields of an account.
type Profile struct {
	FarmName string
	Owner    string
	Phone    string
}

// AccountService is the account directory. It also owns the admin purge.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

// NewAccountService constructs an AccountService. db may be nil for
// backends that do not use database/sql.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m, now: time.Now}
}

// CreateAccount registers email with an empty schema. Both email and
// credentialSecret are required; an existing email yields
// common.ErrorConflict and leaves the stored account untouched.
func (s *AccountService) CreateAccount(ctx context.Context, email, credentialSecret string, profile Profile) (*models.Account, error) {
	if email == "" || credentialSecret == "" {
		return nil, fmt.Errorf("%w: email and credential are required", common.ErrorInvalidInput)
	}

	repo := s.repomanager.Accounts(s.db)

	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrorConflict
	case !errors.Is(err, common.ErrorNotFound):
		return nil, storeError("error checking email", err)
	}

	account := &models.Account{
		Email:            email,
		CredentialSecret: credentialSecret,
		FarmName:         profile.FarmName,
		Owner:            profile.Owner,
		Phone:            profile.Phone,
		Schema:           fields.Map{},
		CreatedAt:        s.now().UTC(),
	}

	account, err = repo.Create(ctx, account)
	if err != nil {
		return nil, storeError("error creating account", err)
	}
	return account, nil
}

// FindByEmail resolves an account by its unique email.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError("error finding account", err)
	}
	return account, nil
}

// ListAccounts returns every account, oldest first.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	list, err := s.repomanager.Accounts(s.db).List(ctx)
	if err != nil {
		return nil, storeError("error listing accounts", err)
	}
	return list, nil
}

// PurgeAll deletes every account and returns how many were removed.
// Form records are not touched: they keep their account ids and stay
// readable. Callers that need referential cleanup must do it themselves.
func (s *AccountService) PurgeAll(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Accounts(s.db).DeleteAll(ctx)
	if err != nil {
		return 0, storeError("error deleting accounts", err)
	}
	return n, nil
}
