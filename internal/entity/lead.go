package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead statuses. Leads are immutable after creation except for Status.
const (
	LeadStatusNew         = "new"
	LeadStatusContacted   = "contacted"
	LeadStatusQualified   = "qualified"
	LeadStatusUnqualified = "unqualified"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead is a candidate contact that survived verification, scoring and
// deduplication, persisted against an account and campaign.
type Lead struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	CampaignID  string `json:"campaign_id"`
	ExecutionID string `json:"execution_id"`

	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	CompanySize int    `json:"company_size,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Source      string `json:"source"`

	Score                  int     `json:"score"`
	VerificationConfidence float64 `json:"verification_confidence"`
	EmailVerified          bool    `json:"email_verified"`
	BelowThreshold         bool    `json:"below_threshold"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeadFilter selects leads for listing.
type LeadFilter struct {
	CampaignID    string
	Status        string
	MinScore      int
	IncludeBelow  bool // include below-threshold leads
	Limit, Offset int
}

// LeadRepositoryInterface is the persistence contract for leads.
type LeadRepositoryInterface interface {
	// ExistingKeys returns the dedupe keys of all leads of an account.
	ExistingKeys(ctx context.Context, accountID string) (map[string]bool, error)
	ListByAccount(ctx context.Context, accountID string, filter LeadFilter) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// NewLead promotes a candidate into a persisted lead.
func NewLead(c CandidateContact, accountID, campaignID, executionID string, score int, confidence float64, verified, belowThreshold bool) *Lead {
	now := time.Now().UTC()
	return &Lead{
		ID:                     uuid.New().String(),
		AccountID:              accountID,
		CampaignID:             campaignID,
		ExecutionID:            executionID,
		Name:                   c.Name,
		Title:                  c.Title,
		Company:                c.Company,
		CompanySize:            c.CompanySize,
		Industry:               c.Industry,
		Location:               c.Location,
		Email:                  strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:                  c.Phone,
		LinkedInURL:            c.LinkedInURL,
		Source:                 c.Source,
		Score:                  score,
		VerificationConfidence: confidence,
		EmailVerified:          verified,
		BelowThreshold:         belowThreshold,
		Status:                 LeadStatusNew,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// DedupeKey mirrors CandidateContact.DedupeKey for persisted leads.
func (l *Lead) DedupeKey() string {
	if l.Email != "" {
		return l.Email
	}
	return strings.ToLower(strings.TrimSpace(l.Name)) + "|" + strings.ToLower(strings.TrimSpace(l.Company))
}

func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusUnqualified:
		return true
	}
	return false
}
