// Package accounts persists Account documents. The Postgres backend keeps
// the dynamic schema in a JSONB column; the memory backend serves tests and
// local runs.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/dbx"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db    dbx.DBTX
	newID func() string
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, newID: uuid.NewString}
}

// Create inserts the account with a fresh id. A duplicate email yields
// common.ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (id, email, credential_secret, farm_name, owner, phone, schema_fields, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	id := r.newID()
	schema := account.Schema
	if schema == nil {
		schema = fields.Map{}
	}

	_, err := r.db.ExecContext(ctx, query,
		id, account.Email, account.CredentialSecret, account.FarmName, account.Owner, account.Phone, schema, account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.ID = id
	account.Schema = schema
	return account, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, email, credential_secret, farm_name, owner, phone, schema_fields, created_at FROM accounts
		 WHERE email = $1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.CredentialSecret,
		&account.FarmName, &account.Owner, &account.Phone,
		&account.Schema, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Account, error) {
	query :=
		`SELECT id, email, credential_secret, farm_name, owner, phone, schema_fields, created_at FROM accounts
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(
			&a.ID, &a.Email, &a.CredentialSecret,
			&a.FarmName, &a.Owner, &a.Phone,
			&a.Schema, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// UpdateSchema overwrites the whole stored schema of account id.
func (r *PostgresRepository) UpdateSchema(ctx context.Context, id string, schema fields.Map) error {
	query :=
		`UPDATE accounts SET schema_fields = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, schema)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteAll removes every account and reports how many were removed.
func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
