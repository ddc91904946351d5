package forms

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formColumns = []string{"id", "account_id", "form_type", "field_values", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo := NewPostgresRepository(db)
	repo.newID = func() string { return "form-1" }
	return repo, mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	q := regexp.MustCompile(`INSERT INTO forms \(id, account_id, form_type, field_values, created_at, updated_at\)`)
	mock.ExpectExec(q.String()).
		WithArgs("form-1", "U1", "fitosanitarios", `{"date":"2024-01-01","dose":5}`, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.FormRecord{
		AccountID: "U1",
		FormType:  "fitosanitarios",
		Values:    fields.Map{"dose": fields.Number(5), "date": fields.String("2024-01-01")},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, "form-1", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NilValuesStoredAsEmptyObject(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO forms`).
		WithArgs("form-1", "U1", "comite", `{}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.FormRecord{AccountID: "U1", FormType: "comite"})
	require.NoError(t, err)
	assert.NotNil(t, got.Values)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO forms`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.FormRecord{AccountID: "U1", FormType: "comite"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(formColumns).AddRow("form-1", "U1", "comite", []byte(`{"members":3}`), now, now)
	mock.ExpectQuery(`(?s)SELECT .* FROM forms\s+WHERE id = \$1`).WithArgs("form-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "form-1")
	require.NoError(t, err)
	assert.Equal(t, "U1", got.AccountID)
	assert.True(t, fields.Map{"members": fields.Number(3)}.Equal(got.Values))
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM forms`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrorNotFound), "got %v", err)
}

func TestListByAccount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(formColumns).
		AddRow("f2", "U1", "comite", []byte(`{}`), now.Add(time.Minute), now.Add(time.Minute)).
		AddRow("f1", "U1", "comite", []byte(`{"a":1}`), now, now)
	mock.ExpectQuery(`(?s)FROM forms\s+WHERE account_id = \$1 AND \(\$2 = '' OR form_type = \$2\)\s+ORDER BY created_at DESC`).
		WithArgs("U1", "comite").
		WillReturnRows(rows)

	got, err := repo.ListByAccount(context.Background(), "U1", "comite")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "f2", got[0].ID)
	assert.Equal(t, "f1", got[1].ID)
}

func TestListByAccount_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM forms`).WillReturnError(errors.New("boom"))

	_, err := repo.ListByAccount(context.Background(), "U1", "")
	if err == nil || !regexp.MustCompile(`failed to select forms: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

const replaceQuery = `(?s)UPDATE forms SET field_values = \$2, updated_at = \$3\s+WHERE id = \$1\s+RETURNING`

func TestReplaceValues(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	rows := sqlmock.NewRows(formColumns).AddRow("form-1", "U1", "fitosanitarios", []byte(`{"dose":7}`), created, updated)
	mock.ExpectQuery(replaceQuery).
		WithArgs("form-1", `{"dose":7}`, updated).
		WillReturnRows(rows)

	got, err := repo.ReplaceValues(context.Background(), "form-1", fields.Map{"dose": fields.Number(7)}, updated)
	require.NoError(t, err)
	assert.True(t, fields.Map{"dose": fields.Number(7)}.Equal(got.Values))
	assert.Equal(t, updated, got.UpdatedAt)
	assert.Equal(t, created, got.CreatedAt)
}

func TestReplaceValues_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(replaceQuery).WillReturnError(sql.ErrNoRows)

	_, err := repo.ReplaceValues(context.Background(), "nope", nil, time.Now())
	assert.True(t, errors.Is(err, common.ErrorNotFound), "got %v", err)
}

func TestReplaceValues_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(replaceQuery).WillReturnError(errors.New("db err"))

	_, err := repo.ReplaceValues(context.Background(), "form-1", fields.Map{}, time.Now())
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
