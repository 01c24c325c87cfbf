package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leadforge/leadforge-api/internal/entity"
)

var ErrExecutionNotFound = errors.New("execution not found")

type ExecutionRepository struct {
	DB *sql.DB
}

func NewExecutionRepository(db *sql.DB) *ExecutionRepository {
	return &ExecutionRepository{DB: db}
}

const executionColumns = `id, campaign_id, account_id, state, outcome, error_kind,
	started_at, finished_at, lead_count, sourced_count, fallback_count,
	duplicate_count, below_min_score_count`

func (r *ExecutionRepository) Create(ctx context.Context, e *entity.Execution) error {
	query := `
		INSERT INTO executions (` + executionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.CampaignID, e.AccountID, e.State, e.Outcome, e.ErrorKind,
		e.StartedAt, e.FinishedAt, e.LeadCount, e.SourcedCount, e.FallbackCount,
		e.DuplicateCount, e.BelowMinScoreLead,
	)
	return err
}

// Finalize writes the terminal state of a failed execution. Successful runs
// are finalized inside the lead batch transaction instead.
func (r *ExecutionRepository) Finalize(ctx context.Context, e *entity.Execution) error {
	return finalizeExecution(ctx, r.DB, e)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func finalizeExecution(ctx context.Context, db execer, e *entity.Execution) error {
	query := `
		UPDATE executions SET
			state = $2, outcome = $3, error_kind = $4, finished_at = $5,
			lead_count = $6, sourced_count = $7, fallback_count = $8,
			duplicate_count = $9, below_min_score_count = $10
		WHERE id = $1
	`
	res, err := db.ExecContext(ctx, query,
		e.ID, e.State, e.Outcome, e.ErrorKind, e.FinishedAt,
		e.LeadCount, e.SourcedCount, e.FallbackCount,
		e.DuplicateCount, e.BelowMinScoreLead,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExecutionNotFound
	}
	return nil
}

func (r *ExecutionRepository) FindByID(ctx context.Context, id string) (*entity.Execution, error) {
	var e entity.Execution
	err := r.DB.QueryRowContext(ctx, `SELECT `+executionColumns+` FROM executions WHERE id = $1`, id).Scan(
		&e.ID, &e.CampaignID, &e.AccountID, &e.State, &e.Outcome, &e.ErrorKind,
		&e.StartedAt, &e.FinishedAt, &e.LeadCount, &e.SourcedCount, &e.FallbackCount,
		&e.DuplicateCount, &e.BelowMinScoreLead,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExecutionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExecutionRepository) ListByCampaign(ctx context.Context, campaignID string, limit int) ([]*entity.Execution, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + executionColumns + ` FROM executions WHERE campaign_id = $1 ORDER BY started_at DESC LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, campaignID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var executions []*entity.Execution
	for rows.Next() {
		var e entity.Execution
		if err := rows.Scan(
			&e.ID, &e.CampaignID, &e.AccountID, &e.State, &e.Outcome, &e.ErrorKind,
			&e.StartedAt, &e.FinishedAt, &e.LeadCount, &e.SourcedCount, &e.FallbackCount,
			&e.DuplicateCount, &e.BelowMinScoreLead,
		); err != nil {
			return nil, err
		}
		executions = append(executions, &e)
	}
	return executions, rows.Err()
}
