package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/infra/http/middleware"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

type CampaignHandler struct {
	Campaigns  entity.CampaignRepository
	Executions entity.ExecutionRepository
	Producer   usecase.RunProducerInterface
}

func NewCampaignHandler(campaigns entity.CampaignRepository, executions entity.ExecutionRepository, producer usecase.RunProducerInterface) *CampaignHandler {
	return &CampaignHandler{Campaigns: campaigns, Executions: executions, Producer: producer}
}

type createCampaignRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Criteria       entity.Criteria `json:"criteria"`
	Cadence        string          `json:"cadence"`
	FrequencyHours int             `json:"frequency_hours"`
	MinScore       int             `json:"min_score"`
	MaxLeadsPerRun int             `json:"max_leads_per_run"`
	MaxLeadsTotal  int             `json:"max_leads_total"`
	Activate       bool            `json:"activate"`
}

func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	campaign, err := entity.NewCampaign(claims.AccountID, req.Name, req.Cadence, req.Criteria, req.MinScore)
	if err == nil {
		campaign.Description = req.Description
		campaign.FrequencyHours = req.FrequencyHours
		if req.MaxLeadsPerRun > 0 {
			campaign.MaxLeadsPerRun = req.MaxLeadsPerRun
		}
		campaign.MaxLeadsTotal = req.MaxLeadsTotal
		err = campaign.Validate()
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Activate {
		if err := campaign.Activate(time.Now().UTC()); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.Campaigns.Create(r.Context(), campaign); err != nil {
		writeError(w, http.StatusInternalServerError, "could not create campaign")
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	campaigns, err := h.Campaigns.ListByAccount(r.Context(), claims.AccountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []*entity.Campaign{}
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownedCampaign(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

type updateCampaignRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Criteria       *entity.Criteria `json:"criteria"`
	Cadence        *string          `json:"cadence"`
	FrequencyHours *int             `json:"frequency_hours"`
	MinScore       *int             `json:"min_score"`
	MaxLeadsPerRun *int             `json:"max_leads_per_run"`
	MaxLeadsTotal  *int             `json:"max_leads_total"`
}

func (h *CampaignHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownedCampaign(w, r)
	if !ok {
		return
	}

	var req updateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Criteria != nil {
		campaign.Criteria = *req.Criteria
	}
	if req.Cadence != nil {
		campaign.Cadence = *req.Cadence
	}
	if req.FrequencyHours != nil {
		campaign.FrequencyHours = *req.FrequencyHours
	}
	if req.MinScore != nil {
		campaign.MinScore = *req.MinScore
	}
	if req.MaxLeadsPerRun != nil {
		campaign.MaxLeadsPerRun = *req.MaxLeadsPerRun
	}
	if req.MaxLeadsTotal != nil {
		campaign.MaxLeadsTotal = *req.MaxLeadsTotal
	}
	campaign.UpdatedAt = time.Now().UTC()

	if err := campaign.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Campaigns.Update(r.Context(), campaign); err != nil {
		writeError(w, http.StatusInternalServerError, "could not update campaign")
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownedCampaign(w, r)
	if !ok {
		return
	}
	if err := h.Campaigns.Delete(r.Context(), campaign.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "could not delete campaign")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CampaignHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(c *entity.Campaign, now time.Time) error { return c.Pause(now) })
}

func (h *CampaignHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(c *entity.Campaign, now time.Time) error { return c.Activate(now) })
}

func (h *CampaignHandler) transition(w http.ResponseWriter, r *http.Request, apply func(*entity.Campaign, time.Time) error) {
	campaign, ok := h.ownedCampaign(w, r)
	if !ok {
		return
	}
	if err := apply(campaign, time.Now().UTC()); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := h.Campaigns.Update(r.Context(), campaign); err != nil {
		writeError(w, http.StatusInternalServerError, "could not update campaign")
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// HandleRunNow enqueues an immediate pipeline run for the campaign.
func (h *CampaignHandler) HandleRunNow(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownedCampaign(w, r)
	if !ok {
		return
	}
	if campaign.Status != entity.CampaignStatusActive && campaign.Status != entity.CampaignStatusDraft {
		writeError(w, http.StatusConflict, "campaign cannot run in status "+campaign.Status)
		return
	}

	err := h.Producer.PublishRun(r.Context(), usecase.RunPayload{
		CampaignID:  campaign.ID,
		AccountID:   campaign.AccountID,
		RequestedBy: "manual",
		EnqueuedAt:  time.Now().UTC(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not enqueue run")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *CampaignHandler) HandleListExecutions(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownedCampaign(w, r)
	if !ok {
		return
	}
	executions, err := h.Executions.ListByCampaign(r.Context(), campaign.ID, 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list executions")
		return
	}
	if executions == nil {
		executions = []*entity.Execution{}
	}
	writeJSON(w, http.StatusOK, executions)
}

// ownedCampaign loads the campaign from the URL and enforces ownership.
// Admins may reach any campaign.
func (h *CampaignHandler) ownedCampaign(w http.ResponseWriter, r *http.Request) (*entity.Campaign, bool) {
	claims := middleware.ClaimsFromContext(r.Context())
	campaign, err := h.Campaigns.FindByID(r.Context(), chi.URLParam(r, "campaignID"))
	if errors.Is(err, usecase.ErrCampaignNotFound) {
		writeError(w, http.StatusNotFound, "campaign not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load campaign")
		return nil, false
	}
	if campaign.AccountID != claims.AccountID && !claims.Admin {
		writeError(w, http.StatusNotFound, "campaign not found")
		return nil, false
	}
	return campaign, true
}
