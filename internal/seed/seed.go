package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/pkg/auth"
)

// DefaultAdminUsername and DefaultAdminPassword are the well-known first-run
// credentials. The password must be changed after the first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

// CreateDefaultData seeds the rows the application needs to be usable on an
// empty database: the admin account and an active cycle named after the
// current calendar year. Both inserts resolve uniqueness conflicts with DO
// NOTHING, so two processes bootstrapping at the same time cannot fail or
// duplicate rows.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	if err := seedAdminUser(ctx, dbPool, lgr); err != nil {
		return err
	}

	return seedActiveCycle(ctx, dbPool, lgr)
}

func seedAdminUser(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	hashed, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	cmdTag, err := dbPool.Exec(ctx, `
		INSERT INTO users (username, password, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING`,
		DefaultAdminUsername, hashed, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	if cmdTag.RowsAffected() > 0 {
		lgr.Info().Str("username", DefaultAdminUsername).Msg("Seeded default admin user")
	}

	return nil
}

func seedActiveCycle(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	// Seed only when no cycle exists at all: an operator may have renamed or
	// deactivated the year cycle on purpose.
	var exists bool
	if err := dbPool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cycles)`).Scan(&exists); err != nil {
		return fmt.Errorf("check cycles: %w", err)
	}
	if exists {
		return nil
	}

	year := fmt.Sprintf("%d", time.Now().Year())
	cmdTag, err := dbPool.Exec(ctx, `
		INSERT INTO cycles (name, active)
		VALUES ($1, TRUE)
		ON CONFLICT (name) DO NOTHING`,
		year)
	if err != nil {
		return fmt.Errorf("seed active cycle: %w", err)
	}

	if cmdTag.RowsAffected() > 0 {
		lgr.Info().Str("cycle", year).Msg("Seeded active cycle")
	}

	return nil
}
