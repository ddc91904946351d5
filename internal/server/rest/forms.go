package rest

import (
	"errors"
	"net/http"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/fields"
	"github.com/fincaforms/fincaforms/internal/logging"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/fincaforms/fincaforms/internal/server/services"
)

// FormHandler serves creation, replacement and reads of form records.
type FormHandler struct {
	forms  *services.FormService
	logger logging.Logger
}

// NewFormHandler returns a FormHandler backed by forms.
func NewFormHandler(forms *services.FormService, logger logging.Logger) *FormHandler {
	return &FormHandler{forms: forms, logger: logger.With("handler", "forms")}
}

type createFormRequest struct {
	FormType string     `json:"formType"`
	Values   fields.Map `json:"values"`
}

type updateFormRequest struct {
	Values fields.Map `json:"values"`
}

// Create stores a new form record for the account in the path. Every
// failure, including missing fields, is reported as a 500.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID := pathParam(r, userParam)

	var req createFormRequest
	if err := readJSON(w, r, &req); err != nil {
		h.logger.Warn(r.Context(), "bad form body", "account_id", accountID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error creating form")
		return
	}

	form, err := h.forms.CreateForm(r.Context(), accountID, req.FormType, req.Values)
	if err != nil {
		h.logger.Error(r.Context(), "error creating form", "account_id", accountID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error creating form")
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// Update replaces the values of a form record. An unknown id answers 200
// with a null body.
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	formID := pathParam(r, "formId")

	var req updateFormRequest
	if err := readJSON(w, r, &req); err != nil {
		h.logger.Warn(r.Context(), "bad form body", "form_id", formID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating form")
		return
	}

	form, err := h.forms.UpdateForm(r.Context(), formID, req.Values)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, form)
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusOK, nil)
	default:
		h.logger.Error(r.Context(), "error updating form", "form_id", formID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating form")
	}
}

// Get returns one form record by id.
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	formID := pathParam(r, "formId")

	form, err := h.forms.GetForm(r.Context(), formID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, form)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Form not found")
	default:
		h.logger.Error(r.Context(), "error fetching form", "form_id", formID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching form")
	}
}

// List returns the account's forms, newest first, optionally filtered by
// the formType query parameter.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := pathParam(r, userParam)
	formType := r.URL.Query().Get("formType")

	list, err := h.forms.ListForms(r.Context(), accountID, formType)
	if err != nil {
		h.logger.Error(r.Context(), "error listing forms", "account_id", accountID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching forms")
		return
	}
	if list == nil {
		list = []*models.FormRecord{}
	}
	writeJSON(w, http.StatusOK, list)
}
