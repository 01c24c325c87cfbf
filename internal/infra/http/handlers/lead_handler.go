package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/infra/http/middleware"
)

type LeadHandler struct {
	Leads entity.LeadRepositoryInterface
}

func NewLeadHandler(leads entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{Leads: leads}
}

// HandleList lists the caller's leads. Below-threshold leads stay hidden
// unless ?include_below=true is passed.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	q := r.URL.Query()

	minScore, _ := strconv.Atoi(q.Get("min_score"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	filter := entity.LeadFilter{
		CampaignID:   q.Get("campaign_id"),
		Status:       q.Get("status"),
		MinScore:     minScore,
		IncludeBelow: q.Get("include_below") == "true",
		Limit:        limit,
		Offset:       offset,
	}

	leads, err := h.Leads.ListByAccount(r.Context(), claims.AccountID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list leads")
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

type updateLeadStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateStatus is the only mutation leads support after creation.
func (h *LeadHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	lead, err := h.Leads.FindByID(r.Context(), chi.URLParam(r, "leadID"))
	if errors.Is(err, entity.ErrLeadNotFound) {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load lead")
		return
	}
	if lead.AccountID != claims.AccountID && !claims.Admin {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	var req updateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !entity.ValidLeadStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := h.Leads.UpdateStatus(r.Context(), lead.ID, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, "could not update lead")
		return
	}
	lead.Status = req.Status
	writeJSON(w, http.StatusOK, lead)
}
