package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/logging"
	"github.com/fincaforms/fincaforms/internal/server/services"
)

// SchemaHandler serves reads and merges of an account's schema.
type SchemaHandler struct {
	schemas *services.SchemaService
	logger  logging.Logger
}

// NewSchemaHandler returns a SchemaHandler backed by schemas.
func NewSchemaHandler(schemas *services.SchemaService, logger logging.Logger) *SchemaHandler {
	return &SchemaHandler{schemas: schemas, logger: logger.With("handler", "schema")}
}

type schemaUpdatedResponse struct {
	Message string     `json:"message"`
	Schema  fields.Map `json:"schema"`
}

// Get returns the schema of the account named by email in the path.
func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := pathParam(r, userParam)

	schema, err := h.schemas.GetSchema(r.Context(), email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, schema)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error(r.Context(), "error fetching schema", "email", email, "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching schema")
	}
}

// Merge shallow-merges the request body into the stored schema. An empty
// body merges nothing.
func (h *SchemaHandler) Merge(w http.ResponseWriter, r *http.Request) {
	email := pathParam(r, userParam)

	var partial fields.Map
	if err := readJSON(w, r, &partial); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Schema must be a JSON object")
		return
	}

	schema, err := h.schemas.MergeSchema(r.Context(), email, partial)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, schemaUpdatedResponse{Message: "Schema updated successfully", Schema: schema})
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error(r.Context(), "error updating schema", "email", email, "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating schema")
	}
}
