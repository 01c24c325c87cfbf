package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Execution outcomes.
const (
	ExecutionOutcomeSuccess = "success"
	ExecutionOutcomePartial = "partial" // at least one candidate used fallback verification
	ExecutionOutcomeFailed  = "failed"
)

// Pipeline states an execution moves through, strictly in order.
const (
	ExecutionStatePending       = "pending"
	ExecutionStateSourcing      = "sourcing"
	ExecutionStateVerifying     = "verifying"
	ExecutionStateScoring       = "scoring"
	ExecutionStateDeduplicating = "deduplicating"
	ExecutionStatePersisting    = "persisting"
	ExecutionStateCompleted     = "completed"
	ExecutionStateFailed        = "failed"
)

// Execution is one run of the sourcing pipeline for a campaign. It is
// immutable once finalized.
type Execution struct {
	ID         string     `json:"id"`
	CampaignID string     `json:"campaign_id"`
	AccountID  string     `json:"account_id"`
	State      string     `json:"state"`
	Outcome    string     `json:"outcome,omitempty"`
	ErrorKind  string     `json:"error_kind,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	LeadCount         int `json:"lead_count"`
	SourcedCount      int `json:"sourced_count"`
	FallbackCount     int `json:"fallback_count"` // verification fell back to default confidence
	DuplicateCount    int `json:"duplicate_count"`
	BelowMinScoreLead int `json:"below_min_score_count"`
}

// ExecutionRepository is the persistence contract for executions.
type ExecutionRepository interface {
	Create(ctx context.Context, e *Execution) error
	// Finalize is only used for failed runs; successful runs are finalized
	// inside the lead-persistence transaction.
	Finalize(ctx context.Context, e *Execution) error
	FindByID(ctx context.Context, id string) (*Execution, error)
	ListByCampaign(ctx context.Context, campaignID string, limit int) ([]*Execution, error)
}

// NewExecution starts a pending execution for a campaign.
func NewExecution(campaignID, accountID string) *Execution {
	return &Execution{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		AccountID:  accountID,
		State:      ExecutionStatePending,
		StartedAt:  time.Now().UTC(),
	}
}

// Complete finalizes a successful run. Outcome degrades to partial when any
// candidate proceeded on fallback verification confidence.
func (e *Execution) Complete(now time.Time) {
	e.State = ExecutionStateCompleted
	e.Outcome = ExecutionOutcomeSuccess
	if e.FallbackCount > 0 {
		e.Outcome = ExecutionOutcomePartial
	}
	e.FinishedAt = &now
}

// Fail finalizes the run with the error kind that aborted it.
func (e *Execution) Fail(now time.Time, errorKind string) {
	e.State = ExecutionStateFailed
	e.Outcome = ExecutionOutcomeFailed
	e.ErrorKind = errorKind
	e.FinishedAt = &now
}

// Finalized reports whether the execution reached a terminal state.
func (e *Execution) Finalized() bool {
	return e.State == ExecutionStateCompleted || e.State == ExecutionStateFailed
}
