package accounts

import (
	"context"

	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
)

// Repository is the accounts side of the document store. Each method is a
// single atomic operation on the store; none of them spans documents in a
// transaction.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	UpdateSchema(ctx context.Context, id string, schema fields.Map) error
	DeleteAll(ctx context.Context) (int64, error)
}
