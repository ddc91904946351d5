package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fincaforms/fincaforms/internal/dbx"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/logging"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/fincaforms/fincaforms/internal/server/repositories/accounts"
	"github.com/fincaforms/fincaforms/internal/server/repositories/forms"
	"github.com/fincaforms/fincaforms/internal/server/repositories/repomanager"
	"github.com/fincaforms/fincaforms/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("connection reset")

type testEnv struct {
	router   *chi.Mux
	accounts *services.AccountService
	forms    *services.FormService
}

func newTestEnv(t *testing.T, rm repomanager.RepositoryManager, store dbx.Pinger) *testEnv {
	t.Helper()

	orig := hashPassword
	hashPassword = func(p string) (string, error) { return "digest:" + p, nil }
	t.Cleanup(func() { hashPassword = orig })

	log := logging.Nop{}
	as := services.NewAccountService(nil, rm)
	ss := services.NewSchemaService(nil, rm)
	fs := services.NewFormService(nil, rm)

	r := NewRouter(log, []string{"*"},
		NewAccountHandler(as, log),
		NewSchemaHandler(ss, log),
		NewFormHandler(fs, log),
		NewHealthHandler(store, log),
	)
	return &testEnv{router: r, accounts: as, forms: fs}
}

func newMemoryEnv(t *testing.T) *testEnv {
	return newTestEnv(t, repomanager.NewMemoryRepositoryManager(), nil)
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

type formBody struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"userId"`
	FormType  string     `json:"formType"`
	Values    fields.Map `json:"values"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

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

type pingFunc func(context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }
