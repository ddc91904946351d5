// Package models defines the documents persisted by the server.
package models

import (
	"time"

	"github.com/fincaforms/fincaforms/internal/fields"
)

// Account is a registered tenant. Every account owns exactly one dynamic
// schema; field names are scoped to the account.
type Account struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	// CredentialSecret is opaque to this service and never serialized.
	CredentialSecret string     `json:"-"`
	FarmName         string     `json:"farmName,omitempty"`
	Owner            string     `json:"owner,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Schema           fields.Map `json:"schema"`
	CreatedAt        time.Time  `json:"createdAt"`
}
