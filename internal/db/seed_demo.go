package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobtrackhq/jobtrack/internal/config"
	"github.com/jobtrackhq/jobtrack/internal/security"
)

// EnsureDemoUser seeds the shared read-only demo account so the sentinel id
// the auth gate checks against always resolves to a real user.
func EnsureDemoUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.DemoUserID == "" || cfg.DemoEmail == "" || cfg.DemoPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, cfg.DemoUserID).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.DemoPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, lastname, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
		cfg.DemoUserID, cfg.DemoEmail, hash, cfg.DemoName, "lastName", "my city", now, now,
	)

	return err
}
