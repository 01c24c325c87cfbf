package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

const campaignColumns = `id, account_id, name, description, status, criteria, cadence,
	frequency_hours, min_score, max_leads_per_run, max_leads_total,
	total_leads_generated, last_run_at, next_run_at, created_at, updated_at`

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	criteria, err := json.Marshal(c.Criteria)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO campaigns (` + campaignColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = r.DB.ExecContext(ctx, query,
		c.ID, c.AccountID, c.Name, c.Description, c.Status, criteria, c.Cadence,
		c.FrequencyHours, c.MinScore, c.MaxLeadsPerRun, c.MaxLeadsTotal,
		c.TotalLeadsGenerated, c.LastRunAt, c.NextRunAt, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrCampaignNotFound
	}
	return c, err
}

func (r *CampaignRepository) ListByAccount(ctx context.Context, accountID string) ([]*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE account_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCampaigns(rows)
}

// ListDue returns active campaigns whose next run is at or before now.
func (r *CampaignRepository) ListDue(ctx context.Context, now time.Time) ([]*entity.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + ` FROM campaigns
		WHERE status = $1 AND next_run_at IS NOT NULL AND next_run_at <= $2
		ORDER BY next_run_at
	`
	rows, err := r.DB.QueryContext(ctx, query, entity.CampaignStatusActive, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCampaigns(rows)
}

func (r *CampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	criteria, err := json.Marshal(c.Criteria)
	if err != nil {
		return err
	}
	query := `
		UPDATE campaigns SET
			name = $2, description = $3, status = $4, criteria = $5, cadence = $6,
			frequency_hours = $7, min_score = $8, max_leads_per_run = $9,
			max_leads_total = $10, total_leads_generated = $11,
			last_run_at = $12, next_run_at = $13, updated_at = $14
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.Description, c.Status, criteria, c.Cadence,
		c.FrequencyHours, c.MinScore, c.MaxLeadsPerRun,
		c.MaxLeadsTotal, c.TotalLeadsGenerated,
		c.LastRunAt, c.NextRunAt, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return usecase.ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return usecase.ErrCampaignNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*entity.Campaign, error) {
	var c entity.Campaign
	var criteria []byte
	err := row.Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Description, &c.Status, &criteria, &c.Cadence,
		&c.FrequencyHours, &c.MinScore, &c.MaxLeadsPerRun, &c.MaxLeadsTotal,
		&c.TotalLeadsGenerated, &c.LastRunAt, &c.NextRunAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(criteria, &c.Criteria); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCampaigns(rows *sql.Rows) ([]*entity.Campaign, error) {
	var campaigns []*entity.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}
