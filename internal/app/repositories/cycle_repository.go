package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/db"
	"github.com/dalvarez/asistencia/internal/pkg/apperrors"
	"github.com/dalvarez/asistencia/internal/pkg/dberrors"
)

// CycleRepository handles database operations for school-year cycles
type CycleRepository struct {
	db *pgxpool.Pool
}

// NewCycleRepository creates a new cycle repository
func NewCycleRepository(db *pgxpool.Pool) *CycleRepository {
	return &CycleRepository{
		db: db,
	}
}

// Create inserts a new cycle and makes it the active one. Deactivating the
// previous cycle and inserting the new one happen in one transaction.
func (r *CycleRepository) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE cycles SET active = FALSE`); err != nil {
			return fmt.Errorf("deactivate cycles: %w", err)
		}

		err := tx.QueryRow(ctx,
			`INSERT INTO cycles (name, active) VALUES ($1, TRUE) RETURNING id`,
			name).Scan(&id)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %q", apperrors.ErrCycleAlreadyExists, name)
			}
			return fmt.Errorf("insert cycle: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a cycle by ID
func (r *CycleRepository) GetByID(ctx context.Context, id int64) (*models.Cycle, error) {
	var cycle models.Cycle
	err := r.db.QueryRow(ctx,
		`SELECT id, name, active FROM cycles WHERE id = $1`,
		id).Scan(&cycle.ID, &cycle.Name, &cycle.Active)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, fmt.Errorf("%w: id %d", apperrors.ErrCycleNotFound, id)
		}
		return nil, fmt.Errorf("get cycle: %w", err)
	}

	return &cycle, nil
}

// GetActive retrieves the currently active cycle.
func (r *CycleRepository) GetActive(ctx context.Context) (*models.Cycle, error) {
	var cycle models.Cycle
	err := r.db.QueryRow(ctx,
		`SELECT id, name, active FROM cycles WHERE active = TRUE`).
		Scan(&cycle.ID, &cycle.Name, &cycle.Active)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrNoActiveCycle
		}
		return nil, fmt.Errorf("get active cycle: %w", err)
	}

	return &cycle, nil
}

// GetAll retrieves all cycles, newest name first.
func (r *CycleRepository) GetAll(ctx context.Context) ([]*models.Cycle, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, active FROM cycles ORDER BY name DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	defer rows.Close()

	var cycles []*models.Cycle
	for rows.Next() {
		var cycle models.Cycle
		if err := rows.Scan(&cycle.ID, &cycle.Name, &cycle.Active); err != nil {
			return nil, err
		}
		cycles = append(cycles, &cycle)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cycles, nil
}

// Activate makes the given cycle the single active one. Both updates run in
// one transaction so there is never more than one active cycle.
func (r *CycleRepository) Activate(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE cycles SET active = FALSE`); err != nil {
			return fmt.Errorf("deactivate cycles: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `UPDATE cycles SET active = TRUE WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("activate cycle: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: id %d", apperrors.ErrCycleNotFound, id)
		}
		return nil
	})
}

// Delete deletes a cycle by ID. Courses of the cycle (and their students) go
// with it via the schema's cascade.
func (r *CycleRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cycles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", apperrors.ErrCycleNotFound, id)
	}

	return nil
}
