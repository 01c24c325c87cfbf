package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

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

type mockExecutionRepo struct {
	mock.Mock
}

func (m *mockExecutionRepo) Create(ctx context.Context, e *entity.Execution) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockExecutionRepo) Finalize(ctx context.Context, e *entity.Execution) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockExecutionRepo) FindByID(ctx context.Context, id string) (*entity.Execution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Execution), args.Error(1)
}

func (m *mockExecutionRepo) ListByCampaign(ctx context.Context, campaignID string, limit int) ([]*entity.Execution, error) {
	args := m.Called(ctx, campaignID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Execution), args.Error(1)
}

type mockLeadRepo struct {
	mock.Mock
}

func (m *mockLeadRepo) ExistingKeys(ctx context.Context, accountID string) (map[string]bool, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *mockLeadRepo) ListByAccount(ctx context.Context, accountID string, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *mockLeadRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
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

type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) FindByName(ctx context.Context, name string) (*entity.Plan, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Plan), args.Error(1)
}

type mockRunProducer struct {
	mock.Mock
}

func (m *mockRunProducer) PublishRun(ctx context.Context, payload usecase.RunPayload) error {
	return m.Called(ctx, payload).Error(0)
}
