package forms

import (
	"context"
	"time"

	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/server/models"
)

// Repository is the forms side of the document store.
type Repository interface {
	Create(ctx context.Context, form *models.FormRecord) (*models.FormRecord, error)
	GetByID(ctx context.Context, id string) (*models.FormRecord, error)
	// ListByAccount returns the forms referencing accountID, newest first.
	// An empty formType matches every type.
	ListByAccount(ctx context.Context, accountID, formType string) ([]*models.FormRecord, error)
	// ReplaceValues swaps the whole values mapping and the update time in
	// one write, returning the stored record.
	ReplaceValues(ctx context.Context, id string, values fields.Map, updatedAt time.Time) (*models.FormRecord, error)
}
