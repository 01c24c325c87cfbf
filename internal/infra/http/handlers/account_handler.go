package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leadforge/leadforge-api/internal/infra/http/middleware"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

// AccountHandler serves the authenticated account's own profile.
type AccountHandler struct {
	Accounts usecase.AccountRepositoryInterface
}

func NewAccountHandler(accounts usecase.AccountRepositoryInterface) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	account, err := h.Accounts.FindByID(r.Context(), claims.AccountID)
	if errors.Is(err, usecase.ErrAccountNotFound) {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load account")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type updateProfileRequest struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Industry    *string `json:"industry"`
}

func (h *AccountHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	account, err := h.Accounts.FindByID(r.Context(), claims.AccountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load account")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.CompanyName != nil {
		account.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		account.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.Industry != nil {
		account.Industry = *req.Industry
	}

	if err := account.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Accounts.Update(r.Context(), account); err != nil {
		writeError(w, http.StatusInternalServerError, "could not update account")
		return
	}
	writeJSON(w, http.StatusOK, account)
}
