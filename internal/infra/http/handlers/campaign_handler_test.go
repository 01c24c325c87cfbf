package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/infra/http/middleware"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

type campaignFixture struct {
	router    http.Handler
	campaigns *mockCampaignRepo
	execs     *mockExecutionRepo
	producer  *mockRunProducer
	token     string
}

func newCampaignFixture(t *testing.T) *campaignFixture {
	t.Helper()

	campaigns := new(mockCampaignRepo)
	execs := new(mockExecutionRepo)
	producer := new(mockRunProducer)
	handler := NewCampaignHandler(campaigns, execs, producer)

	tm := middleware.NewTokenManager("unit-test-secret")
	token, err := tm.Issue("acc-1", "jane@acme.com", false, time.Hour)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(tm.RequireAuth)
		r.Post("/campaigns", handler.HandleCreate)
		r.Get("/campaigns", handler.HandleList)
		r.Get("/campaigns/{campaignID}", handler.HandleGet)
		r.Post("/campaigns/{campaignID}/pause", handler.HandlePause)
		r.Post("/campaigns/{campaignID}/run", handler.HandleRunNow)
	})

	return &campaignFixture{router: r, campaigns: campaigns, execs: execs, producer: producer, token: token}
}

func (f *campaignFixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func ownedCampaignFixture(t *testing.T) *entity.Campaign {
	t.Helper()
	c, err := entity.NewCampaign("acc-1", "SaaS founders", entity.CadenceDaily, entity.Criteria{Keywords: "saas"}, 40)
	require.NoError(t, err)
	return c
}

func TestHandleCreateCampaign(t *testing.T) {
	f := newCampaignFixture(t)
	f.campaigns.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := f.do(http.MethodPost, "/campaigns", map[string]any{
		"name":     "SaaS founders",
		"cadence":  "daily",
		"criteria": map[string]any{"keywords": "saas"},
		"activate": true,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got entity.Campaign
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "acc-1", got.AccountID)
	assert.Equal(t, entity.CampaignStatusActive, got.Status)
	assert.NotNil(t, got.NextRunAt)
}

func TestHandleCreateCampaignRejectsBadPayload(t *testing.T) {
	f := newCampaignFixture(t)

	rec := f.do(http.MethodPost, "/campaigns", map[string]any{
		"name":    "No targeting",
		"cadence": "daily",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.campaigns.AssertNotCalled(t, "Create")
}

func TestHandleCreateCampaignRequiresAuth(t *testing.T) {
	f := newCampaignFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/campaigns", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleGetForeignCampaignIs404(t *testing.T) {
	f := newCampaignFixture(t)

	foreign := ownedCampaignFixture(t)
	foreign.AccountID = "someone-else"
	f.campaigns.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

	rec := f.do(http.MethodGet, "/campaigns/"+foreign.ID, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetUnknownCampaignIs404(t *testing.T) {
	f := newCampaignFixture(t)
	f.campaigns.On("FindByID", mock.Anything, "missing").Return(nil, usecase.ErrCampaignNotFound)

	rec := f.do(http.MethodGet, "/campaigns/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePauseDraftConflicts(t *testing.T) {
	f := newCampaignFixture(t)

	draft := ownedCampaignFixture(t)
	f.campaigns.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)

	rec := f.do(http.MethodPost, "/campaigns/"+draft.ID+"/pause", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	f.campaigns.AssertNotCalled(t, "Update")
}

func TestHandleRunNowEnqueues(t *testing.T) {
	f := newCampaignFixture(t)

	campaign := ownedCampaignFixture(t)
	require.NoError(t, campaign.Activate(time.Now().UTC()))
	f.campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)
	f.producer.On("PublishRun", mock.Anything, mock.Anything).Return(nil)

	rec := f.do(http.MethodPost, "/campaigns/"+campaign.ID+"/run", nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	payload := f.producer.Calls[0].Arguments.Get(1).(usecase.RunPayload)
	assert.Equal(t, campaign.ID, payload.CampaignID)
	assert.Equal(t, "manual", payload.RequestedBy)
}

func TestHandleRunNowCancelledConflicts(t *testing.T) {
	f := newCampaignFixture(t)

	campaign := ownedCampaignFixture(t)
	require.NoError(t, campaign.Cancel(time.Now().UTC()))
	f.campaigns.On("FindByID", mock.Anything, campaign.ID).Return(campaign, nil)

	rec := f.do(http.MethodPost, "/campaigns/"+campaign.ID+"/run", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	f.producer.AssertNotCalled(t, "PublishRun")
}

func TestHandleListCampaignsEmpty(t *testing.T) {
	f := newCampaignFixture(t)
	f.campaigns.On("ListByAccount", mock.Anything, "acc-1").Return(nil, nil)

	rec := f.do(http.MethodGet, "/campaigns", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
