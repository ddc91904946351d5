// Package forms persists FormRecord documents.
package forms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/dbx"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db    dbx.DBTX
	newID func() string
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, newID: uuid.NewString}
}

func (r *PostgresRepository) Create(ctx context.Context, form *models.FormRecord) (*models.FormRecord, error) {
	query :=
		`INSERT INTO forms (id, account_id, form_type, field_values, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	id := r.newID()
	values := form.Values
	if values == nil {
		values = fields.Map{}
	}

	_, err := r.db.ExecContext(ctx, query, id, form.AccountID, form.FormType, values, form.CreatedAt, form.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	form.ID = id
	form.Values = values
	return form, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FormRecord, error) {
	query :=
		`SELECT id, account_id, form_type, field_values, created_at, updated_at FROM forms
		 WHERE id = $1
		 `

	form := &models.FormRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&form.ID, &form.AccountID, &form.FormType, &form.Values, &form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return form, nil
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID, formType string) ([]*models.FormRecord, error) {
	query :=
		`SELECT id, account_id, form_type, field_values, created_at, updated_at FROM forms
		 WHERE account_id = $1 AND ($2 = '' OR form_type = $2)
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID, formType)
	if err != nil {
		return nil, fmt.Errorf("failed to select forms: %w", err)
	}
	defer rows.Close()

	result := []*models.FormRecord{}
	for rows.Next() {
		var item models.FormRecord
		if err := rows.Scan(
			&item.ID, &item.AccountID, &item.FormType, &item.Values, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ReplaceValues(ctx context.Context, id string, values fields.Map, updatedAt time.Time) (*models.FormRecord, error) {
	query :=
		`UPDATE forms SET field_values = $2, updated_at = $3
		 WHERE id = $1
		 RETURNING id, account_id, form_type, field_values, created_at, updated_at
		 `

	if values == nil {
		values = fields.Map{}
	}

	form := &models.FormRecord{}
	err := r.db.QueryRowContext(ctx, query, id, values, updatedAt).Scan(
		&form.ID, &form.AccountID, &form.FormType, &form.Values, &form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return form, nil
}
