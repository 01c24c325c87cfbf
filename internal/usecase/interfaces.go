package usecase

import (
	"context"
	"time"

	"github.com/leadforge/leadforge-api/internal/entity"
)

// ContactProvider searches an external contact-data API. Implementations map
// transport failures onto the usecase error taxonomy and must return an empty
// slice, not an error, on zero results.
type ContactProvider interface {
	Name() string
	Search(ctx context.Context, criteria entity.Criteria) ([]entity.CandidateContact, error)
}

// EmailVerifier returns a deliverability confidence in [0,1] for an email.
type EmailVerifier interface {
	Verify(ctx context.Context, email string) (float64, error)
}

// ProfileEnricher validates a professional-network profile URL.
type ProfileEnricher interface {
	ValidateProfile(ctx context.Context, profileURL string) (bool, error)
}

type AccountRepositoryInterface interface {
	Create(ctx context.Context, a *entity.Account) error
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Account, error)
}

type PlanRepositoryInterface interface {
	FindByName(ctx context.Context, name string) (*entity.Plan, error)
}

// ExecutionBatchWriter persists one execution's result as a single
// transaction: the leads, the finalized execution, the campaign run counters
// and the account usage. A failure rolls back everything.
type ExecutionBatchWriter interface {
	SaveExecutionResult(ctx context.Context, exec *entity.Execution, leads []*entity.Lead, campaign *entity.Campaign) error
}

// RunProducerInterface enqueues a campaign run request.
type RunProducerInterface interface {
	PublishRun(ctx context.Context, payload RunPayload) error
}

// RunPayload is the queue message that triggers one pipeline execution.
type RunPayload struct {
	CampaignID  string    `json:"campaign_id"`
	AccountID   string    `json:"account_id"`
	RequestedBy string    `json:"requested_by"` // scheduler or manual
	EnqueuedAt  time.Time `json:"enqueued_at"`
}

// EmailService sends operator-facing notification mail.
type EmailService interface {
	SendRunSummary(to, contactName, campaignName string, exec *entity.Execution) error
}
