package models

import (
	"time"

	"github.com/fincaforms/fincaforms/internal/fields"
)

// FormRecord is one submitted form instance.
//
// AccountID is a weak reference: it is stored as a plain id, is not checked
// against the accounts collection and is left untouched when the account
// goes away. Values are independent of the account's schema.
type FormRecord struct {
	ID        string     `json:"_id"`
	AccountID string     `json:"userId"`
	FormType  string     `json:"formType"`
	Values    fields.Map `json:"values"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
