package database

import (
	"context"
	"database/sql"
)

// PlatformStats is the aggregate view behind the admin dashboard.
type PlatformStats struct {
	TotalAccounts    int     `json:"total_accounts"`
	ActiveAccounts   int     `json:"active_accounts"`
	TotalCampaigns   int     `json:"total_campaigns"`
	ActiveCampaigns  int     `json:"active_campaigns"`
	TotalLeads       int     `json:"total_leads"`
	LeadsLast30Days  int     `json:"leads_last_30_days"`
	AverageLeadScore float64 `json:"average_lead_score"`
	FailedExecutions int     `json:"failed_executions_last_30_days"`
}

type StatsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM accounts),
			(SELECT COUNT(*) FROM accounts WHERE status = 'active'),
			(SELECT COUNT(*) FROM campaigns),
			(SELECT COUNT(*) FROM campaigns WHERE status = 'active'),
			(SELECT COUNT(*) FROM leads),
			(SELECT COUNT(*) FROM leads WHERE created_at > NOW() - INTERVAL '30 days'),
			(SELECT COALESCE(AVG(score), 0) FROM leads),
			(SELECT COUNT(*) FROM executions
				WHERE outcome = 'failed' AND started_at > NOW() - INTERVAL '30 days')
	`
	var s PlatformStats
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.TotalAccounts, &s.ActiveAccounts,
		&s.TotalCampaigns, &s.ActiveCampaigns,
		&s.TotalLeads, &s.LeadsLast30Days,
		&s.AverageLeadScore, &s.FailedExecutions,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
