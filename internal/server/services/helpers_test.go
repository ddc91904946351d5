package services

import (
	"context"
	"errors"
	"time"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/dbx"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/fincaforms/fincaforms/internal/server/repositories/accounts"
	"github.com/fincaforms/fincaforms/internal/server/repositories/forms"
	"github.com/fincaforms/fincaforms/internal/server/repositories/repomanager"
)

var errBoom = errors.New("connection refused")

var fixedNow = time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// brokenRepoMgr fails every store call with errBoom.
type brokenRepoMgr struct{ repomanager.RepositoryManager }

func (brokenRepoMgr) Accounts(dbx.DBTX) accounts.Repository { return brokenAccounts{} }
func (brokenRepoMgr) Forms(dbx.DBTX) forms.Repository       { return brokenForms{} }

type brokenAccounts struct{}

func (brokenAccounts) Create(context.Context, *models.Account) (*models.Account, error) {
	return nil, errBoom
}
func (brokenAccounts) GetByEmail(context.Context, string) (*models.Account, error) {
	return nil, errBoom
}
func (brokenAccounts) List(context.Context) ([]*models.Account, error) { return nil, errBoom }
func (brokenAccounts) UpdateSchema(context.Context, string, fields.Map) error {
	return errBoom
}
func (brokenAccounts) DeleteAll(context.Context) (int64, error) { return 0, errBoom }

type brokenForms struct{}

func (brokenForms) Create(context.Context, *models.FormRecord) (*models.FormRecord, error) {
	return nil, errBoom
}
func (brokenForms) GetByID(context.Context, string) (*models.FormRecord, error) {
	return nil, errBoom
}
func (brokenForms) ListByAccount(context.Context, string, string) ([]*models.FormRecord, error) {
	return nil, errBoom
}
func (brokenForms) ReplaceValues(context.Context, string, fields.Map, time.Time) (*models.FormRecord, error) {
	return nil, errBoom
}

// vanishingRepoMgr finds the account but loses it before the write,
// as when a purge runs between the read and the write of a merge.
type vanishingRepoMgr struct {
	repomanager.RepositoryManager
	account *models.Account
}

func (m vanishingRepoMgr) Accounts(dbx.DBTX) accounts.Repository {
	return vanishingAccounts{account: m.account}
}

type vanishingAccounts struct {
	brokenAccounts
	account *models.Account
}

func (v vanishingAccounts) GetByEmail(context.Context, string) (*models.Account, error) {
	return v.account, nil
}
func (vanishingAccounts) UpdateSchema(context.Context, string, fields.Map) error {
	return common.ErrorNotFound
}
