package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/leadforge/leadforge-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, account_id, campaign_id, execution_id, name, title, company,
	company_size, industry, location, email, phone, linkedin_url, source, score,
	verification_confidence, email_verified, below_threshold, status, created_at, updated_at`

// ExistingKeys returns the dedupe key of every lead the account owns:
// the normalized email, or name|company for email-less leads.
func (r *LeadRepository) ExistingKeys(ctx context.Context, accountID string) (map[string]bool, error) {
	query := `
		SELECT CASE WHEN email <> '' THEN lower(email)
			ELSE lower(name) || '|' || lower(company) END
		FROM leads WHERE account_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys[key] = true
	}
	return keys, rows.Err()
}

// SaveExecutionResult persists one finished run atomically: the lead batch,
// the finalized execution row and the campaign's run counters. Any failure
// rolls the whole run back so the execution's lead count can never disagree
// with the leads table.
func (r *LeadRepository) SaveExecutionResult(ctx context.Context, exec *entity.Execution, leads []*entity.Lead, campaign *entity.Campaign) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	for _, l := range leads {
		if _, err := tx.ExecContext(ctx, insert,
			l.ID, l.AccountID, l.CampaignID, l.ExecutionID, l.Name, l.Title, l.Company,
			l.CompanySize, l.Industry, l.Location, l.Email, l.Phone, l.LinkedInURL, l.Source, l.Score,
			l.VerificationConfidence, l.EmailVerified, l.BelowThreshold, l.Status, l.CreatedAt, l.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert lead %s: %w", l.ID, err)
		}
	}

	if err := finalizeExecution(ctx, tx, exec); err != nil {
		return err
	}

	criteria, err := json.Marshal(campaign.Criteria)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE campaigns SET
			status = $2, criteria = $3, total_leads_generated = $4,
			last_run_at = $5, next_run_at = $6, updated_at = $7
		WHERE id = $1
	`, campaign.ID, campaign.Status, criteria, campaign.TotalLeadsGenerated,
		campaign.LastRunAt, campaign.NextRunAt, campaign.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update campaign counters: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE accounts SET usage_current = usage_current + $2, updated_at = NOW()
		WHERE id = $1
	`, exec.AccountID, len(leads)); err != nil {
		return fmt.Errorf("update account usage: %w", err)
	}

	return tx.Commit()
}

func (r *LeadRepository) ListByAccount(ctx context.Context, accountID string, filter entity.LeadFilter) ([]*entity.Lead, error) {
	conditions := []string{"account_id = $1"}
	args := []any{accountID}

	if filter.CampaignID != "" {
		args = append(args, filter.CampaignID)
		conditions = append(conditions, fmt.Sprintf("campaign_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.MinScore > 0 {
		args = append(args, filter.MinScore)
		conditions = append(conditions, fmt.Sprintf("score >= $%d", len(args)))
	}
	if !filter.IncludeBelow {
		conditions = append(conditions, "below_threshold = FALSE")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE %s ORDER BY score DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		leadColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(
			&l.ID, &l.AccountID, &l.CampaignID, &l.ExecutionID, &l.Name, &l.Title, &l.Company,
			&l.CompanySize, &l.Industry, &l.Location, &l.Email, &l.Phone, &l.LinkedInURL, &l.Source, &l.Score,
			&l.VerificationConfidence, &l.EmailVerified, &l.BelowThreshold, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, &l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	var l entity.Lead
	err := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id).Scan(
		&l.ID, &l.AccountID, &l.CampaignID, &l.ExecutionID, &l.Name, &l.Title, &l.Company,
		&l.CompanySize, &l.Industry, &l.Location, &l.Email, &l.Phone, &l.LinkedInURL, &l.Source, &l.Score,
		&l.VerificationConfidence, &l.EmailVerified, &l.BelowThreshold, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE leads SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}
