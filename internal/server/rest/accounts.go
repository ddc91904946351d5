package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fincaforms/fincaforms/internal/common"
	"github.com/fincaforms/fincaforms/internal/cryptox"
	"github.com/fincaforms/fincaforms/internal/logging"
	"github.com/fincaforms/fincaforms/internal/server/models"
	"github.com/fincaforms/fincaforms/internal/server/services"
)

var hashPassword = cryptox.HashPassword

// AccountHandler serves signup, the user listing and the admin purge.
type AccountHandler struct {
	accounts *services.AccountService
	logger   logging.Logger
}

// NewAccountHandler returns an AccountHandler backed by accounts.
func NewAccountHandler(accounts *services.AccountService, logger logging.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger.With("handler", "accounts")}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FarmName string `json:"farmName"`
	Owner    string `json:"owner"`
	Phone    string `json:"phone"`
}

// Signup registers a new account. The password is stored as an argon2id
// digest; the account directory never sees the plain text.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	digest, err := hashPassword(req.Password)
	if err != nil {
		h.logger.Error(r.Context(), "error hashing password", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to sign up user. Please try again.")
		return
	}

	profile := services.Profile{FarmName: req.FarmName, Owner: req.Owner, Phone: req.Phone}
	_, err = h.accounts.CreateAccount(r.Context(), req.Email, digest, profile)
	switch {
	case err == nil:
		writeMessage(w, http.StatusCreated, "User signed up successfully!")
	case errors.Is(err, common.ErrorInvalidInput):
		writeMessage(w, http.StatusBadRequest, "Email and password are required.")
	case errors.Is(err, common.ErrorConflict):
		writeMessage(w, http.StatusBadRequest, "User already exists.")
	default:
		h.logger.Error(r.Context(), "error signing up user", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to sign up user. Please try again.")
	}
}

// List returns every account without its credential.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "error listing users", "error", err)
		writeText(w, http.StatusInternalServerError, "Error retrieving users.")
		return
	}
	if list == nil {
		list = []*models.Account{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Purge deletes every account. Form records are left in place.
func (h *AccountHandler) Purge(w http.ResponseWriter, r *http.Request) {
	n, err := h.accounts.PurgeAll(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "error deleting users", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete users. Please try again.")
		return
	}
	h.logger.Info(r.Context(), "users purged", "deleted", n)
	writeMessage(w, http.StatusOK, fmt.Sprintf("Successfully deleted %d users.", n))
}
