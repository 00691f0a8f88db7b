package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the two tables on boot so a fresh database works
// without an external migration step.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(50) NOT NULL,
			lastname VARCHAR(50) NOT NULL DEFAULT 'lastName',
			location VARCHAR(80) NOT NULL DEFAULT 'my city',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			company VARCHAR(100) NOT NULL,
			position VARCHAR(120) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			job_type VARCHAR(20) NOT NULL DEFAULT 'full-time',
			created_by UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_created_by ON jobs(created_by)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_owner_created_at ON jobs(created_by, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
