package database

import (
	"context"
	"database/sql"
)

// Bootstrap creates the tables and seed plans if they do not exist yet.
// Statements are idempotent so the API can start against an empty database.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			monthly_lead_quota INT NOT NULL,
			max_leads_per_run INT NOT NULL,
			price_cents INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			company_name TEXT NOT NULL,
			contact_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			industry TEXT NOT NULL DEFAULT '',
			plan TEXT NOT NULL DEFAULT 'starter',
			status TEXT NOT NULL DEFAULT 'active',
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			quota_monthly INT NOT NULL DEFAULT 1000,
			usage_current INT NOT NULL DEFAULT 0,
			usage_reset_date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			last_login TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS campaigns (
			id UUID PRIMARY KEY,
			account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			criteria JSONB NOT NULL,
			cadence TEXT NOT NULL,
			frequency_hours INT NOT NULL DEFAULT 0,
			min_score INT NOT NULL DEFAULT 60,
			max_leads_per_run INT NOT NULL DEFAULT 50,
			max_leads_total INT NOT NULL DEFAULT 0,
			total_leads_generated INT NOT NULL DEFAULT 0,
			last_run_at TIMESTAMPTZ,
			next_run_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_campaigns_due
			ON campaigns (next_run_at) WHERE status = 'active'`,
		`CREATE TABLE IF NOT EXISTS executions (
			id UUID PRIMARY KEY,
			campaign_id UUID NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
			account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			state TEXT NOT NULL,
			outcome TEXT NOT NULL DEFAULT '',
			error_kind TEXT NOT NULL DEFAULT '',
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ,
			lead_count INT NOT NULL DEFAULT 0,
			sourced_count INT NOT NULL DEFAULT 0,
			fallback_count INT NOT NULL DEFAULT 0,
			duplicate_count INT NOT NULL DEFAULT 0,
			below_min_score_count INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id UUID PRIMARY KEY,
			account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			campaign_id UUID NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
			execution_id UUID NOT NULL REFERENCES executions(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			company_size INT NOT NULL DEFAULT 0,
			industry TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			linkedin_url TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			score INT NOT NULL CHECK (score BETWEEN 0 AND 100),
			verification_confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			below_threshold BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'new',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		// One lead per (account, normalized email); name+company fallback for
		// email-less leads.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_account_email
			ON leads (account_id, lower(email)) WHERE email <> ''`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_account_name_company
			ON leads (account_id, lower(name), lower(company)) WHERE email = ''`,
		`INSERT INTO plans (id, name, monthly_lead_quota, max_leads_per_run, price_cents)
			VALUES
				('00000000-0000-0000-0000-000000000001', 'starter', 500, 50, 9900),
				('00000000-0000-0000-0000-000000000002', 'professional', 2000, 100, 29900),
				('00000000-0000-0000-0000-000000000003', 'enterprise', 10000, 250, 99900)
			ON CONFLICT (name) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
