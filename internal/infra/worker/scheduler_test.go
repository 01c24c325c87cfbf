package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

type mockCampaignRepo struct {
	mock.Mock
}

func (m *mockCampaignRepo) Create(ctx context.Context, c *entity.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignRepo) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.Campaign, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) Update(ctx context.Context, c *entity.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCampaignRepo) ListDue(ctx context.Context, now time.Time) ([]*entity.Campaign, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *mockAccountRepo) Update(ctx context.Context, a *entity.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAccountRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAccountRepo) List(ctx context.Context, limit, offset int) ([]*entity.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Account), args.Error(1)
}

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) PublishRun(ctx context.Context, payload usecase.RunPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func dueCampaign(t *testing.T, now time.Time) *entity.Campaign {
	t.Helper()
	c, err := entity.NewCampaign("acc-1", "SaaS founders", entity.CadenceDaily, entity.Criteria{Keywords: "saas"}, 40)
	require.NoError(t, err)
	require.NoError(t, c.Activate(now.Add(-time.Hour)))
	past := now.Add(-time.Minute)
	c.NextRunAt = &past
	return c
}

func freshAccount(now time.Time) *entity.Account {
	return &entity.Account{
		ID: "acc-1", Email: "jane@acme.com", Status: entity.AccountStatusActive,
		QuotaMonthly: 500, UsageCurrent: 10, UsageResetDate: now.Add(-24 * time.Hour),
	}
}

func TestTickEnqueuesDueCampaignsAndBumpsSchedule(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	campaigns := new(mockCampaignRepo)
	accounts := new(mockAccountRepo)
	producer := new(mockProducer)
	s := NewCampaignScheduler(campaigns, accounts, producer, zap.NewNop(), time.Minute)

	campaign := dueCampaign(t, now)
	campaigns.On("ListDue", ctx, now).Return([]*entity.Campaign{campaign}, nil)
	accounts.On("FindByID", ctx, "acc-1").Return(freshAccount(now), nil)
	producer.On("PublishRun", ctx, mock.Anything).Return(nil)
	campaigns.On("Update", ctx, campaign).Return(nil)

	s.tick(ctx, now)

	payload := producer.Calls[0].Arguments.Get(1).(usecase.RunPayload)
	assert.Equal(t, campaign.ID, payload.CampaignID)
	assert.Equal(t, "scheduler", payload.RequestedBy)

	// next_run_at moves past the next tick so the campaign is not re-enqueued
	// while the run waits in the queue.
	require.NotNil(t, campaign.NextRunAt)
	assert.Equal(t, now.Add(2*time.Minute), *campaign.NextRunAt)
	campaigns.AssertCalled(t, "Update", ctx, campaign)
}

func TestTickSkipsScheduleBumpWhenEnqueueFails(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	campaigns := new(mockCampaignRepo)
	accounts := new(mockAccountRepo)
	producer := new(mockProducer)
	s := NewCampaignScheduler(campaigns, accounts, producer, zap.NewNop(), time.Minute)

	campaign := dueCampaign(t, now)
	was := *campaign.NextRunAt
	campaigns.On("ListDue", ctx, now).Return([]*entity.Campaign{campaign}, nil)
	accounts.On("FindByID", ctx, "acc-1").Return(freshAccount(now), nil)
	producer.On("PublishRun", ctx, mock.Anything).Return(assert.AnError)

	s.tick(ctx, now)

	assert.Equal(t, was, *campaign.NextRunAt, "a failed enqueue retries next tick")
	campaigns.AssertNotCalled(t, "Update")
}

func TestTickResetsStaleMonthlyUsage(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	campaigns := new(mockCampaignRepo)
	accounts := new(mockAccountRepo)
	producer := new(mockProducer)
	s := NewCampaignScheduler(campaigns, accounts, producer, zap.NewNop(), time.Minute)

	campaign := dueCampaign(t, now)
	stale := freshAccount(now)
	stale.UsageCurrent = 480
	stale.UsageResetDate = now.Add(-31 * 24 * time.Hour)

	campaigns.On("ListDue", ctx, now).Return([]*entity.Campaign{campaign}, nil)
	accounts.On("FindByID", ctx, "acc-1").Return(stale, nil)
	accounts.On("Update", ctx, stale).Return(nil)
	producer.On("PublishRun", ctx, mock.Anything).Return(nil)
	campaigns.On("Update", ctx, campaign).Return(nil)

	s.tick(ctx, now)

	assert.Equal(t, 0, stale.UsageCurrent)
	assert.Equal(t, now, stale.UsageResetDate)
	accounts.AssertCalled(t, "Update", ctx, stale)
}

func TestTickNoDueCampaignsDoesNothing(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	campaigns := new(mockCampaignRepo)
	producer := new(mockProducer)
	s := NewCampaignScheduler(campaigns, new(mockAccountRepo), producer, zap.NewNop(), time.Minute)

	campaigns.On("ListDue", ctx, now).Return([]*entity.Campaign{}, nil)

	s.tick(ctx, now)

	producer.AssertNotCalled(t, "PublishRun")
}
