package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/infra/http/middleware"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

// PipelineRunner executes one pipeline run for a campaign.
type PipelineRunner interface {
	Run(ctx context.Context, campaignID string) (*entity.Execution, error)
}

// Worker consumes campaign run messages and drives the pipeline. Failed
// executions are recorded on their Execution row, so messages are acked
// either way; only undecodable messages go to the DLQ.
type Worker struct {
	Channel   *amqp.Channel
	Runner    PipelineRunner
	Accounts  usecase.AccountRepositoryInterface
	Campaigns entity.CampaignRepository
	Mailer    usecase.EmailService
	Logger    *zap.Logger
}

func NewWorker(ch *amqp.Channel, runner PipelineRunner, accounts usecase.AccountRepositoryInterface, campaigns entity.CampaignRepository, mailer usecase.EmailService, logger *zap.Logger) *Worker {
	return &Worker{
		Channel:   ch,
		Runner:    runner,
		Accounts:  accounts,
		Campaigns: campaigns,
		Mailer:    mailer,
		Logger:    logger,
	}
}

// Start consumes the queue until the context is cancelled.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	w.Logger.Info("run worker started", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload usecase.RunPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.Logger.Error("undecodable run message, dead-lettering", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log := w.Logger.With(zap.String("campaign_id", payload.CampaignID), zap.String("requested_by", payload.RequestedBy))
	log.Info("processing campaign run")

	exec, err := w.Runner.Run(ctx, payload.CampaignID)
	if exec == nil {
		// Nothing was recorded (e.g. campaign deleted after enqueue).
		log.Warn("run produced no execution", zap.Error(err))
		d.Nack(false, false)
		return
	}
	if err != nil {
		log.Warn("run failed", zap.String("error_kind", exec.ErrorKind), zap.Error(err))
		if exec.ErrorKind == "provider_unavailable" || exec.ErrorKind == "rate_limited" {
			middleware.RecordIntegrationError("apollo")
		}
	}
	middleware.RecordExecution(exec.Outcome, exec.LeadCount)

	w.notify(ctx, log, payload, exec)
	d.Ack(false)
}

// notify emails the account owner a run summary. Best effort only.
func (w *Worker) notify(ctx context.Context, log *zap.Logger, payload usecase.RunPayload, exec *entity.Execution) {
	if w.Mailer == nil {
		return
	}
	account, err := w.Accounts.FindByID(ctx, payload.AccountID)
	if err != nil {
		log.Warn("summary mail skipped, account lookup failed", zap.Error(err))
		return
	}
	campaignName := payload.CampaignID
	if campaign, err := w.Campaigns.FindByID(ctx, payload.CampaignID); err == nil {
		campaignName = campaign.Name
	}
	if err := w.Mailer.SendRunSummary(account.Email, account.ContactName, campaignName, exec); err != nil {
		log.Warn("summary mail failed", zap.Error(err))
	}
}
