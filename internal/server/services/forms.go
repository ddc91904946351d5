package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/fincaforms/fincaforms/internal/server/repositories/repomanager"
)

// FormService is the form store. Ownership is advisory: the account id on a
// record is never checked against the account directory.
type FormService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewFormService(db *sql.DB, m repomanager.RepositoryManager) *FormService {
	return &FormService{db: db, repomanager: m, now: time.Now}
}

// CreateForm stores a new record. accountID and formType are required;
// the account does not have to exist.
func (s *FormService) CreateForm(ctx context.Context, accountID, formType string, values fields.Map) (*models.FormRecord, error) {
	if accountID == "" || formType == "" {
		return nil, fmt.Errorf("%w: account id and form type are required", common.ErrorInvalidInput)
	}
	if values == nil {
		values = fields.Map{}
	}

	now := s.now().UTC()
	form := &models.FormRecord{
		AccountID: accountID,
		FormType:  formType,
		Values:    values,
		CreatedAt: now,
		UpdatedAt: now,
	}

	form, err := s.repomanager.Forms(s.db).Create(ctx, form)
	if err != nil {
		return nil, storeError("error creating form", err)
	}
	return form, nil
}

// UpdateForm replaces the whole values mapping of formID with newValues and
// refreshes updatedAt. Fields missing from newValues are dropped; this is
// not a merge.
func (s *FormService) UpdateForm(ctx context.Context, formID string, newValues fields.Map) (*models.FormRecord, error) {
	if newValues == nil {
		newValues = fields.Map{}
	}

	form, err := s.repomanager.Forms(s.db).ReplaceValues(ctx, formID, newValues, s.now().UTC())
	if err != nil {
		return nil, storeError("error updating form", err)
	}
	return form, nil
}

// GetForm returns a record by id.
func (s *FormService) GetForm(ctx context.Context, formID string) (*models.FormRecord, error) {
	form, err := s.repomanager.Forms(s.db).GetByID(ctx, formID)
	if err != nil {
		return nil, storeError("error fetching form", err)
	}
	return form, nil
}

// ListForms returns the records referencing accountID, newest first,
// optionally restricted to one form type.
func (s *FormService) ListForms(ctx context.Context, accountID, formType string) ([]*models.FormRecord, error) {
	list, err := s.repomanager.Forms(s.db).ListByAccount(ctx, accountID, formType)
	if err != nil {
		return nil, storeError("error listing forms", err)
	}
	return list, nil
}
