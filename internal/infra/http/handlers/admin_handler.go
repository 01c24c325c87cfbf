package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/infra/database"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

// PlatformStatsProvider aggregates platform-wide counters for the dashboard.
type PlatformStatsProvider interface {
	PlatformStats(ctx context.Context) (*database.PlatformStats, error)
}

// AdminHandler serves the operator endpoints. Every route it handles sits
// behind the RequireAdmin middleware.
type AdminHandler struct {
	Accounts usecase.AccountRepositoryInterface
	Plans    usecase.PlanRepositoryInterface
	Stats    PlatformStatsProvider
}

func NewAdminHandler(accounts usecase.AccountRepositoryInterface, plans usecase.PlanRepositoryInterface, stats PlatformStatsProvider) *AdminHandler {
	return &AdminHandler{Accounts: accounts, Plans: plans, Stats: stats}
}

func (h *AdminHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	accounts, err := h.Accounts.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list accounts")
		return
	}
	if accounts == nil {
		accounts = []*entity.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

type createAccountRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Industry    string `json:"industry"`
	Plan        string `json:"plan"`
	Admin       bool   `json:"admin"`
}

func (h *AdminHandler) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Plan == "" {
		req.Plan = "starter"
	}

	plan, err := h.Plans.FindByName(r.Context(), req.Plan)
	if errors.Is(err, entity.ErrPlanNotFound) {
		writeError(w, http.StatusBadRequest, "unknown plan")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load plan")
		return
	}

	account, err := entity.NewAccount(req.Email, req.Password, req.CompanyName, req.ContactName, *plan)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	account.Phone = req.Phone
	account.Industry = req.Industry
	account.Admin = req.Admin

	if err := h.Accounts.Create(r.Context(), account); err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *AdminHandler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := h.loadAccount(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type updateAccountRequest struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Industry    *string `json:"industry"`
	Plan        *string `json:"plan"`
	Status      *string `json:"status"`
	Admin       *bool   `json:"admin"`
}

func (h *AdminHandler) HandleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := h.loadAccount(w, r)
	if !ok {
		return
	}

	var req updateAccountRequest
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
	if req.Plan != nil {
		plan, err := h.Plans.FindByName(r.Context(), *req.Plan)
		if errors.Is(err, entity.ErrPlanNotFound) {
			writeError(w, http.StatusBadRequest, "unknown plan")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not load plan")
			return
		}
		account.Plan = plan.Name
		account.QuotaMonthly = plan.MonthlyLeadQuota
	}
	if req.Status != nil {
		switch *req.Status {
		case entity.AccountStatusActive, entity.AccountStatusSuspended, entity.AccountStatusCancelled:
			account.Status = *req.Status
		default:
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
	}
	if req.Admin != nil {
		account.Admin = *req.Admin
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

func (h *AdminHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	err := h.Accounts.Delete(r.Context(), chi.URLParam(r, "accountID"))
	if errors.Is(err, usecase.ErrAccountNotFound) {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not delete account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *AdminHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	account, ok := h.loadAccount(w, r)
	if !ok {
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := account.SetPassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Accounts.Update(r.Context(), account); err != nil {
		writeError(w, http.StatusInternalServerError, "could not update account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.PlatformStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) loadAccount(w http.ResponseWriter, r *http.Request) (*entity.Account, bool) {
	account, err := h.Accounts.FindByID(r.Context(), chi.URLParam(r, "accountID"))
	if errors.Is(err, usecase.ErrAccountNotFound) {
		writeError(w, http.StatusNotFound, "account not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load account")
		return nil, false
	}
	return account, true
}
