// Package worker holds the background tickers that keep campaigns moving
// without any inbound request.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

// CampaignScheduler checks for due campaigns on a fixed tick and enqueues a
// run message for each. It never runs the pipeline itself: the queue worker
// does, so bursts of due campaigns drain at the worker's pace.
type CampaignScheduler struct {
	campaigns    entity.CampaignRepository
	accounts     usecase.AccountRepositoryInterface
	producer     usecase.RunProducerInterface
	logger       *zap.Logger
	tickInterval time.Duration
}

func NewCampaignScheduler(campaigns entity.CampaignRepository, accounts usecase.AccountRepositoryInterface, producer usecase.RunProducerInterface, logger *zap.Logger, tick time.Duration) *CampaignScheduler {
	if tick <= 0 {
		tick = time.Minute
	}
	return &CampaignScheduler{
		campaigns:    campaigns,
		accounts:     accounts,
		producer:     producer,
		logger:       logger,
		tickInterval: tick,
	}
}

func (s *CampaignScheduler) Start(ctx context.Context) {
	s.logger.Info("campaign scheduler started", zap.Duration("tick", s.tickInterval))

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("campaign scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now.UTC())
		}
	}
}

func (s *CampaignScheduler) tick(ctx context.Context, now time.Time) {
	due, err := s.campaigns.ListDue(ctx, now)
	if err != nil {
		s.logger.Error("could not list due campaigns", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}
	s.logger.Info("due campaigns found", zap.Int("count", len(due)))

	for _, campaign := range due {
		s.maybeResetUsage(ctx, now, campaign.AccountID)

		if err := s.producer.PublishRun(ctx, usecase.RunPayload{
			CampaignID:  campaign.ID,
			AccountID:   campaign.AccountID,
			RequestedBy: "scheduler",
			EnqueuedAt:  now,
		}); err != nil {
			s.logger.Error("could not enqueue run", zap.String("campaign_id", campaign.ID), zap.Error(err))
			continue
		}

		// Push next_run_at forward immediately so the next tick does not
		// enqueue the same campaign again while the run is still queued.
		next := now.Add(s.tickInterval * 2)
		campaign.NextRunAt = &next
		campaign.UpdatedAt = now
		if err := s.campaigns.Update(ctx, campaign); err != nil {
			s.logger.Error("could not bump next run", zap.String("campaign_id", campaign.ID), zap.Error(err))
		}
	}
}

// maybeResetUsage rolls an account's monthly usage counter over when its
// reset date is a month behind.
func (s *CampaignScheduler) maybeResetUsage(ctx context.Context, now time.Time, accountID string) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return
	}
	if now.Sub(account.UsageResetDate) < 30*24*time.Hour {
		return
	}
	account.ResetMonthlyUsage(now)
	if err := s.accounts.Update(ctx, account); err != nil {
		s.logger.Warn("could not reset monthly usage", zap.String("account_id", accountID), zap.Error(err))
	}
}
