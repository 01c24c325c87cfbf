package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/leadforge/leadforge-api/internal/entity"
)

// MockAccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, a *entity.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *entity.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*entity.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Account), args.Error(1)
}

// MockPlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByName(ctx context.Context, name string) (*entity.Plan, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Plan), args.Error(1)
}

// MockCampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListByAccount(ctx context.Context, accountID string) ([]*entity.Campaign, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCampaignRepository) ListDue(ctx context.Context, now time.Time) ([]*entity.Campaign, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

// MockExecutionRepository
type MockExecutionRepository struct {
	mock.Mock
}

func (m *MockExecutionRepository) Create(ctx context.Context, e *entity.Execution) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExecutionRepository) Finalize(ctx context.Context, e *entity.Execution) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExecutionRepository) FindByID(ctx context.Context, id string) (*entity.Execution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Execution), args.Error(1)
}

func (m *MockExecutionRepository) ListByCampaign(ctx context.Context, campaignID string, limit int) ([]*entity.Execution, error) {
	args := m.Called(ctx, campaignID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Execution), args.Error(1)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) ExistingKeys(ctx context.Context, accountID string) (map[string]bool, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockLeadRepository) ListByAccount(ctx context.Context, accountID string, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockBatchWriter
type MockBatchWriter struct {
	mock.Mock
}

func (m *MockBatchWriter) SaveExecutionResult(ctx context.Context, exec *entity.Execution, leads []*entity.Lead, campaign *entity.Campaign) error {
	args := m.Called(ctx, exec, leads, campaign)
	return args.Error(0)
}

// MockContactProvider
type MockContactProvider struct {
	mock.Mock
}

func (m *MockContactProvider) Name() string {
	return "mock-provider"
}

func (m *MockContactProvider) Search(ctx context.Context, criteria entity.Criteria) ([]entity.CandidateContact, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CandidateContact), args.Error(1)
}

// MockEmailVerifier
type MockEmailVerifier struct {
	mock.Mock
}

func (m *MockEmailVerifier) Verify(ctx context.Context, email string) (float64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(float64), args.Error(1)
}

// MockProfileEnricher
type MockProfileEnricher struct {
	mock.Mock
}

func (m *MockProfileEnricher) ValidateProfile(ctx context.Context, profileURL string) (bool, error) {
	args := m.Called(ctx, profileURL)
	return args.Bool(0), args.Error(1)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(accountID, email string, admin bool, ttl time.Duration) (string, error) {
	args := m.Called(accountID, email, admin, ttl)
	return args.String(0), args.Error(1)
}

// MockRunProducer
type MockRunProducer struct {
	mock.Mock
}

func (m *MockRunProducer) PublishRun(ctx context.Context, payload RunPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
