// Package common defines the error kinds shared by the store adapters,
// the services and the HTTP transport. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// A required field was missing or empty.
	ErrorInvalidInput = errors.New("invalid input")

	// A unique key (account email) is already taken.
	ErrorConflict = errors.New("conflict")

	// The referenced account or form does not exist.
	ErrorNotFound = errors.New("not found")

	// The underlying document store failed, timed out or is unreachable.
	ErrorStoreUnavailable = errors.New("store unavailable")
)
