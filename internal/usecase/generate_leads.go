package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leadforge/leadforge-api/internal/entity"
)

// FallbackConfidence is assigned when verification is unavailable for a
// candidate. The candidate proceeds instead of voiding the whole run.
const FallbackConfidence = 0.1

// DeliverableThreshold is the confidence at or above which an email counts
// as verified.
const DeliverableThreshold = 0.7

// GenerateLeadsUseCase is the pipeline orchestrator. One call runs a single
// execution for a campaign: source, verify, score, deduplicate, persist.
// Steps are strictly sequential; only per-candidate verification inside the
// verifying step is parallelized.
type GenerateLeadsUseCase struct {
	AccountRepo  AccountRepositoryInterface
	CampaignRepo entity.CampaignRepository
	ExecRepo     entity.ExecutionRepository
	LeadRepo     entity.LeadRepositoryInterface
	BatchWriter  ExecutionBatchWriter
	Provider     ContactProvider
	Verifier     EmailVerifier
	Enricher     ProfileEnricher
	Logger       *zap.Logger

	// VerifyWorkers bounds concurrent verification calls so the verifier's
	// rate limit is respected. Zero means sequential.
	VerifyWorkers int
}

// verifiedCandidate carries a candidate through the verifying, scoring and
// deduplicating steps.
type verifiedCandidate struct {
	contact      entity.CandidateContact
	confidence   float64
	usedFallback bool
	validProfile bool
	score        int
}

// Run executes the pipeline for one campaign. The returned execution is
// always finalized; the error reports why a failed execution failed.
func (uc *GenerateLeadsUseCase) Run(ctx context.Context, campaignID string) (*entity.Execution, error) {
	log := uc.Logger
	if log == nil {
		log = zap.NewNop()
	}

	campaign, err := uc.CampaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}
	account, err := uc.AccountRepo.FindByID(ctx, campaign.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, campaign.AccountID)
	}

	exec := entity.NewExecution(campaign.ID, account.ID)
	if err := uc.ExecRepo.Create(ctx, exec); err != nil {
		return nil, fmt.Errorf("%w: create execution: %v", ErrPersistenceFailure, err)
	}
	log = log.With(zap.String("campaign_id", campaign.ID), zap.String("execution_id", exec.ID))

	// Sourcing.
	exec.State = entity.ExecutionStateSourcing
	candidates, err := uc.source(ctx, campaign, account)
	if err != nil {
		return uc.fail(ctx, log, exec, err)
	}
	exec.SourcedCount = len(candidates)
	log.Info("sourcing finished", zap.Int("candidates", len(candidates)))

	// Verifying. Failures here are absorbed per candidate.
	exec.State = entity.ExecutionStateVerifying
	verified := uc.verify(ctx, log, campaign.Criteria, candidates)
	for _, v := range verified {
		if v.usedFallback {
			exec.FallbackCount++
		}
	}

	// Scoring.
	exec.State = entity.ExecutionStateScoring
	for i := range verified {
		verified[i].score = Score(verified[i].contact, verified[i].confidence, campaign.Criteria)
	}

	// Deduplicating.
	exec.State = entity.ExecutionStateDeduplicating
	existing, err := uc.LeadRepo.ExistingKeys(ctx, account.ID)
	if err != nil {
		return uc.fail(ctx, log, exec, fmt.Errorf("%w: load existing keys: %v", ErrPersistenceFailure, err))
	}
	unique := uc.dedupe(verified, existing)
	exec.DuplicateCount = len(verified) - len(unique)

	// Persisting: score, rank, cap, then write as one transaction.
	exec.State = entity.ExecutionStatePersisting
	leads := uc.buildLeads(exec, campaign, unique)
	for _, l := range leads {
		if l.BelowThreshold {
			exec.BelowMinScoreLead++
		}
	}
	exec.LeadCount = len(leads)
	exec.Complete(time.Now().UTC())
	campaign.UpdateAfterRun(time.Now().UTC(), len(leads))

	if err := uc.BatchWriter.SaveExecutionResult(ctx, exec, leads, campaign); err != nil {
		exec.LeadCount = 0
		return uc.fail(ctx, log, exec, fmt.Errorf("%w: %v", ErrPersistenceFailure, err))
	}

	log.Info("execution completed",
		zap.String("outcome", exec.Outcome),
		zap.Int("leads", exec.LeadCount),
		zap.Int("duplicates", exec.DuplicateCount),
		zap.Int("fallback_verifications", exec.FallbackCount))
	return exec, nil
}

func (uc *GenerateLeadsUseCase) source(ctx context.Context, campaign *entity.Campaign, account *entity.Account) ([]entity.CandidateContact, error) {
	criteria := campaign.Criteria
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	limit := campaign.RemainingQuota()
	if criteria.MaxResults > 0 && criteria.MaxResults < limit {
		limit = criteria.MaxResults
	}
	if limit <= 0 {
		return nil, nil
	}
	if !account.CanGenerateLeads(limit) {
		return nil, fmt.Errorf("%w: %d/%d used", ErrQuotaExceeded, account.UsageCurrent, account.QuotaMonthly)
	}
	// Overshoot the target so dedup still leaves enough to fill the run.
	criteria.MaxResults = limit * 2

	return uc.Provider.Search(ctx, criteria)
}

func (uc *GenerateLeadsUseCase) verify(ctx context.Context, log *zap.Logger, criteria entity.Criteria, candidates []entity.CandidateContact) []verifiedCandidate {
	out := make([]verifiedCandidate, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	if uc.VerifyWorkers > 0 {
		g.SetLimit(uc.VerifyWorkers)
	} else {
		g.SetLimit(1)
	}

	for i, c := range candidates {
		g.Go(func() error {
			v := verifiedCandidate{contact: c, confidence: FallbackConfidence, usedFallback: true}

			if criteria.VerifyEmails && c.Email != "" && uc.Verifier != nil {
				conf, err := uc.Verifier.Verify(gctx, c.Email)
				if err != nil {
					log.Warn("verification unavailable, using fallback confidence",
						zap.String("email", c.Email), zap.Error(err))
				} else {
					v.confidence = conf
					v.usedFallback = false
				}
			}

			if criteria.EnrichProfiles && c.LinkedInURL != "" && uc.Enricher != nil {
				valid, err := uc.Enricher.ValidateProfile(gctx, c.LinkedInURL)
				if err != nil {
					log.Warn("profile enrichment failed", zap.String("url", c.LinkedInURL), zap.Error(err))
				} else {
					v.validProfile = valid
					if !valid {
						// Broken profile links are noise for the dashboard.
						v.contact.LinkedInURL = ""
					}
				}
			}

			out[i] = v
			return nil
		})
	}
	g.Wait() // workers never return errors; failures are absorbed above
	return out
}

func (uc *GenerateLeadsUseCase) dedupe(verified []verifiedCandidate, existing map[string]bool) []verifiedCandidate {
	contacts := make([]entity.CandidateContact, len(verified))
	byKey := make(map[string]verifiedCandidate, len(verified))
	for i, v := range verified {
		contacts[i] = v.contact
		if _, dup := byKey[v.contact.DedupeKey()]; !dup {
			byKey[v.contact.DedupeKey()] = v
		}
	}
	kept := Dedupe(contacts, existing)
	out := make([]verifiedCandidate, 0, len(kept))
	for _, c := range kept {
		out = append(out, byKey[c.DedupeKey()])
	}
	return out
}

// buildLeads ranks scored candidates, caps the run size and flags
// below-threshold leads instead of discarding them: what was sourced stays
// auditable next to what is surfaced.
func (uc *GenerateLeadsUseCase) buildLeads(exec *entity.Execution, campaign *entity.Campaign, unique []verifiedCandidate) []*entity.Lead {
	ranked := make([]verifiedCandidate, len(unique))
	copy(ranked, unique)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	limit := campaign.RemainingQuota()
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	leads := make([]*entity.Lead, 0, len(ranked))
	for _, s := range ranked {
		leads = append(leads, entity.NewLead(
			s.contact,
			campaign.AccountID,
			campaign.ID,
			exec.ID,
			s.score,
			s.confidence,
			s.confidence >= DeliverableThreshold,
			s.score < campaign.MinScore,
		))
	}
	return leads
}

func (uc *GenerateLeadsUseCase) fail(ctx context.Context, log *zap.Logger, exec *entity.Execution, cause error) (*entity.Execution, error) {
	exec.Fail(time.Now().UTC(), ErrorKind(cause))
	if err := uc.ExecRepo.Finalize(ctx, exec); err != nil {
		log.Error("could not finalize failed execution", zap.Error(err))
	}
	log.Warn("execution failed", zap.String("error_kind", exec.ErrorKind), zap.Error(cause))
	return exec, cause
}
