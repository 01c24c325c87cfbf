package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leadforge/leadforge-api/internal/entity"
)

type PlanRepository struct {
	DB *sql.DB
}

func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

func (r *PlanRepository) FindByName(ctx context.Context, name string) (*entity.Plan, error) {
	query := `SELECT id, name, monthly_lead_quota, max_leads_per_run, price_cents FROM plans WHERE name = $1`

	var p entity.Plan
	err := r.DB.QueryRowContext(ctx, query, name).Scan(
		&p.ID, &p.Name, &p.MonthlyLeadQuota, &p.MaxLeadsPerRun, &p.PriceCents,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
