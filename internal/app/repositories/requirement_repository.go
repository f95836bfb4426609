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

// RequirementRepository handles database operations for course requirements
// and their per-student completion marks.
type RequirementRepository struct {
	db *pgxpool.Pool
}

// NewRequirementRepository creates a new requirement repository
func NewRequirementRepository(db *pgxpool.Pool) *RequirementRepository {
	return &RequirementRepository{
		db: db,
	}
}

// Create inserts a new requirement and returns the generated id.
func (r *RequirementRepository) Create(ctx context.Context, req *models.Requirement) (int64, error) {
	query := `
		INSERT INTO requirements (course_id, description)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, req.CourseID, req.Description).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, req.CourseID)
		}
		return 0, fmt.Errorf("create requirement: %w", err)
	}

	req.ID = id
	return id, nil
}

// GetByID retrieves a requirement by ID
func (r *RequirementRepository) GetByID(ctx context.Context, id int64) (*models.Requirement, error) {
	var req models.Requirement
	err := r.db.QueryRow(ctx,
		`SELECT id, course_id, description FROM requirements WHERE id = $1`,
		id).Scan(&req.ID, &req.CourseID, &req.Description)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, fmt.Errorf("%w: id %d", apperrors.ErrRequirementNotFound, id)
		}
		return nil, fmt.Errorf("get requirement: %w", err)
	}

	return &req, nil
}

// ListByCourse retrieves all requirements of a course ordered by id.
func (r *RequirementRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, course_id, description FROM requirements WHERE course_id = $1 ORDER BY id`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()

	var reqs []*models.Requirement
	for rows.Next() {
		var req models.Requirement
		if err := rows.Scan(&req.ID, &req.CourseID, &req.Description); err != nil {
			return nil, err
		}
		reqs = append(reqs, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reqs, nil
}

// Update changes the description of a requirement.
func (r *RequirementRepository) Update(ctx context.Context, req *models.Requirement) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE requirements SET description = $1 WHERE id = $2`,
		req.Description, req.ID)
	if err != nil {
		return fmt.Errorf("update requirement: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", apperrors.ErrRequirementNotFound, req.ID)
	}

	return nil
}

// Delete deletes a requirement by ID. Completion marks go with it via the
// schema's cascade.
func (r *RequirementRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM requirements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete requirement: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", apperrors.ErrRequirementNotFound, id)
	}

	return nil
}

// ToggleCompletion flips the (requirement, student) completion pair: removes
// it when present, inserts it when absent. Runs in one transaction and
// returns the resulting membership.
func (r *RequirementRepository) ToggleCompletion(ctx context.Context, requirementID, studentID int64) (bool, error) {
	var completed bool
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx,
			`DELETE FROM requirement_completions WHERE requirement_id = $1 AND student_id = $2`,
			requirementID, studentID)
		if err != nil {
			return fmt.Errorf("toggle completion delete: %w", err)
		}

		if cmdTag.RowsAffected() > 0 {
			completed = false
			return nil
		}

		// Pair was absent: insert it. The composite primary key backstops a
		// concurrent toggle inserting the same pair.
		_, err = tx.Exec(ctx, `
			INSERT INTO requirement_completions (requirement_id, student_id)
			VALUES ($1, $2)
			ON CONFLICT (requirement_id, student_id) DO NOTHING`,
			requirementID, studentID)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: requirement %d / student %d",
					apperrors.ErrForeignKeyViolation, requirementID, studentID)
			}
			return fmt.Errorf("toggle completion insert: %w", err)
		}

		completed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return completed, nil
}

// IsCompleted reports whether the (requirement, student) pair is present.
func (r *RequirementRepository) IsCompleted(ctx context.Context, requirementID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM requirement_completions
			WHERE requirement_id = $1 AND student_id = $2
		)`, requirementID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}

	return exists, nil
}

// StatusForStudent returns every requirement of a course with the student's
// completion flag, ordered by requirement id.
func (r *RequirementRepository) StatusForStudent(ctx context.Context, courseID, studentID int64) ([]models.RequirementStatus, error) {
	query := `
		SELECT r.id, r.description, rc.student_id IS NOT NULL
		FROM requirements r
		LEFT JOIN requirement_completions rc
			ON rc.requirement_id = r.id AND rc.student_id = $2
		WHERE r.course_id = $1
		ORDER BY r.id
	`

	rows, err := r.db.Query(ctx, query, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("requirement status: %w", err)
	}
	defer rows.Close()

	var statuses []models.RequirementStatus
	for rows.Next() {
		var rs models.RequirementStatus
		if err := rows.Scan(&rs.ID, &rs.Description, &rs.Completed); err != nil {
			return nil, err
		}
		statuses = append(statuses, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// CountCompletionsForStudent returns how many completion pairs reference the
// student.
func (r *RequirementRepository) CountCompletionsForStudent(ctx context.Context, studentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM requirement_completions WHERE student_id = $1`,
		studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}

	return count, nil
}
