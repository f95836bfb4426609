package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dalvarez/asistencia/internal/app/migrations"
	"github.com/dalvarez/asistencia/internal/pkg/auth"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool)
	migrationsDir := filepath.Join("..", "..", "migrations")
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE users, cycles, courses, students, attendance,
		         requirements, requirement_completions
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return pool
}

func TestCreateDefaultDataIdempotent(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	lgr := zerolog.Nop()

	// Running the seed twice must not duplicate anything.
	for i := 0; i < 2; i++ {
		if err := CreateDefaultData(ctx, pool, lgr); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	var userCount, cycleCount, activeCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cycles`).Scan(&cycleCount); err != nil {
		t.Fatalf("count cycles: %v", err)
	}
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cycles WHERE active`).Scan(&activeCount); err != nil {
		t.Fatalf("count active cycles: %v", err)
	}

	if userCount != 1 {
		t.Errorf("expected 1 user after repeated seeding, got %d", userCount)
	}
	if cycleCount != 1 {
		t.Errorf("expected 1 cycle after repeated seeding, got %d", cycleCount)
	}
	if activeCount != 1 {
		t.Errorf("expected 1 active cycle, got %d", activeCount)
	}

	var hashed string
	err := pool.QueryRow(ctx,
		`SELECT password FROM users WHERE username = $1`, DefaultAdminUsername).Scan(&hashed)
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if !auth.CheckPassword(hashed, DefaultAdminPassword) {
		t.Error("default admin password does not verify")
	}
}

func TestSeedRespectsExistingCycles(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO cycles (name, active) VALUES ('2019', FALSE)`)
	if err != nil {
		t.Fatalf("insert cycle: %v", err)
	}

	if err := CreateDefaultData(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// An operator-managed cycle table is left alone, even with nothing active.
	var cycleCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cycles`).Scan(&cycleCount); err != nil {
		t.Fatalf("count cycles: %v", err)
	}
	if cycleCount != 1 {
		t.Errorf("expected existing cycle to be the only one, got %d", cycleCount)
	}
}
