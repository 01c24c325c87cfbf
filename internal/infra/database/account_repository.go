package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

const accountColumns = `id, email, password_hash, company_name, contact_name, phone, industry,
	plan, status, is_admin, quota_monthly, usage_current, usage_reset_date,
	created_at, updated_at, last_login`

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.CompanyName, a.ContactName, a.Phone, a.Industry,
		a.Plan, a.Status, a.Admin, a.QuotaMonthly, a.UsageCurrent, a.UsageResetDate,
		a.CreatedAt, a.UpdatedAt, a.LastLogin,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var a entity.Account
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.CompanyName, &a.ContactName, &a.Phone, &a.Industry,
		&a.Plan, &a.Status, &a.Admin, &a.QuotaMonthly, &a.UsageCurrent, &a.UsageResetDate,
		&a.CreatedAt, &a.UpdatedAt, &a.LastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET
			email = $2, password_hash = $3, company_name = $4, contact_name = $5,
			phone = $6, industry = $7, plan = $8, status = $9, is_admin = $10,
			quota_monthly = $11, usage_current = $12, usage_reset_date = $13,
			updated_at = $14, last_login = $15
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.CompanyName, a.ContactName,
		a.Phone, a.Industry, a.Plan, a.Status, a.Admin,
		a.QuotaMonthly, a.UsageCurrent, a.UsageResetDate,
		a.UpdatedAt, a.LastLogin,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return usecase.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return usecase.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*entity.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(
			&a.ID, &a.Email, &a.PasswordHash, &a.CompanyName, &a.ContactName, &a.Phone, &a.Industry,
			&a.Plan, &a.Status, &a.Admin, &a.QuotaMonthly, &a.UsageCurrent, &a.UsageResetDate,
			&a.CreatedAt, &a.UpdatedAt, &a.LastLogin,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}
