// Package services contains the server-side business logic: the account
// directory (including the admin purge), the per-account schema registry
// and the form store.
//
// Services hold no in-process state besides their store handle. Every call
// is one or more round trips to the document store, and every failure that
// is not a domain error surfaces as common.ErrorStoreUnavailable.
package services

import (
	"errors"
	"fmt"

	"github.com/fincaforms/fincaforms/internal/common"
)

// storeError passes domain errors through and marks everything else as a
// store failure, keeping the cause in the chain.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorConflict),
		errors.Is(err, common.ErrorInvalidInput):
		return err
	default:
		return fmt.Errorf("%s: %w: %w", op, common.ErrorStoreUnavailable, err)
	}
}
