package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Campaign lifecycle states.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Cadence values. Custom cadences run every FrequencyHours hours.
const (
	CadenceDaily   = "daily"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
	CadenceCustom  = "custom"
)

// Campaign is a recurring lead-sourcing job owned by an account.
type Campaign struct {
	ID          string   `json:"id"`
	AccountID   string   `json:"account_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Criteria    Criteria `json:"criteria"`

	Cadence        string `json:"cadence"`
	FrequencyHours int    `json:"frequency_hours,omitempty"` // custom cadence only
	MinScore       int    `json:"min_score"`

	MaxLeadsPerRun int `json:"max_leads_per_run"`
	MaxLeadsTotal  int `json:"max_leads_total,omitempty"` // 0 means unlimited

	TotalLeadsGenerated int        `json:"total_leads_generated"`
	LastRunAt           *time.Time `json:"last_run_at,omitempty"`
	NextRunAt           *time.Time `json:"next_run_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CampaignRepository is the persistence contract for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, id string) (*Campaign, error)
	ListByAccount(ctx context.Context, accountID string) ([]*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	Delete(ctx context.Context, id string) error
	// ListDue returns active campaigns whose next run is at or before now.
	ListDue(ctx context.Context, now time.Time) ([]*Campaign, error)
}

// NewCampaign builds a draft campaign. It becomes schedulable once activated.
func NewCampaign(accountID, name, cadence string, criteria Criteria, minScore int) (*Campaign, error) {
	now := time.Now().UTC()
	c := &Campaign{
		ID:             uuid.New().String(),
		AccountID:      accountID,
		Name:           name,
		Status:         CampaignStatusDraft,
		Criteria:       criteria,
		Cadence:        cadence,
		MinScore:       minScore,
		MaxLeadsPerRun: 50,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Campaign) Validate() error {
	if c.AccountID == "" {
		return errors.New("account_id is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	switch c.Cadence {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
	case CadenceCustom:
		if c.FrequencyHours <= 0 {
			return errors.New("frequency_hours must be positive for custom cadence")
		}
	default:
		return errors.New("cadence must be daily, weekly, monthly or custom")
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return errors.New("min_score must be between 0 and 100")
	}
	return c.Criteria.Validate()
}

// Activate makes a draft or paused campaign schedulable and plans its first run.
func (c *Campaign) Activate(now time.Time) error {
	switch c.Status {
	case CampaignStatusDraft, CampaignStatusPaused:
	default:
		return errors.New("only draft or paused campaigns can be activated")
	}
	c.Status = CampaignStatusActive
	if c.NextRunAt == nil {
		// First activation runs shortly after, not a full cadence away.
		next := now.Add(5 * time.Minute)
		c.NextRunAt = &next
	}
	c.UpdatedAt = now
	return nil
}

// Pause stops future scheduling. An in-flight execution runs to completion.
func (c *Campaign) Pause(now time.Time) error {
	if c.Status != CampaignStatusActive {
		return errors.New("only active campaigns can be paused")
	}
	c.Status = CampaignStatusPaused
	c.UpdatedAt = now
	return nil
}

// Cancel is terminal.
func (c *Campaign) Cancel(now time.Time) error {
	if c.Status == CampaignStatusCancelled {
		return errors.New("campaign is already cancelled")
	}
	c.Status = CampaignStatusCancelled
	c.UpdatedAt = now
	return nil
}

func (c *Campaign) interval() time.Duration {
	switch c.Cadence {
	case CadenceWeekly:
		return 7 * 24 * time.Hour
	case CadenceMonthly:
		return 30 * 24 * time.Hour
	case CadenceCustom:
		return time.Duration(c.FrequencyHours) * time.Hour
	default:
		return 24 * time.Hour
	}
}

// HasReachedTotalLimit reports whether the optional total-lead cap is hit.
func (c *Campaign) HasReachedTotalLimit() bool {
	return c.MaxLeadsTotal > 0 && c.TotalLeadsGenerated >= c.MaxLeadsTotal
}

// RemainingQuota returns how many leads the next run may still produce.
func (c *Campaign) RemainingQuota() int {
	if c.MaxLeadsTotal == 0 {
		return c.MaxLeadsPerRun
	}
	remaining := c.MaxLeadsTotal - c.TotalLeadsGenerated
	if remaining < c.MaxLeadsPerRun {
		return remaining
	}
	return c.MaxLeadsPerRun
}

// UpdateAfterRun records a finished run and schedules the next one. Campaigns
// that hit their total cap complete instead of rescheduling.
func (c *Campaign) UpdateAfterRun(now time.Time, leadsGenerated int) {
	c.LastRunAt = &now
	c.TotalLeadsGenerated += leadsGenerated
	next := now.Add(c.interval())
	c.NextRunAt = &next
	c.UpdatedAt = now

	if c.HasReachedTotalLimit() {
		c.Status = CampaignStatusCompleted
		c.NextRunAt = nil
	}
}
