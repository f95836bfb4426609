package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/pkg/apperrors"
	"github.com/dalvarez/asistencia/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course and returns the generated id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	query := `
		INSERT INTO courses (name, cycle_id)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, course.Name, course.CycleID).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: id %d", apperrors.ErrCycleNotFound, course.CycleID)
		}
		return 0, fmt.Errorf("create course: %w", err)
	}

	course.ID = id
	return id, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx,
		`SELECT id, name, cycle_id FROM courses WHERE id = $1`,
		id).Scan(&course.ID, &course.Name, &course.CycleID)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, id)
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

// ListByCycle retrieves all courses of a cycle ordered by name.
func (r *CourseRepository) ListByCycle(ctx context.Context, cycleID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, cycle_id FROM courses WHERE cycle_id = $1 ORDER BY name`,
		cycleID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.CycleID); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update renames a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE courses SET name = $1 WHERE id = $2`,
		course.Name, course.ID)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, course.ID)
	}

	return nil
}

// Delete deletes a course by ID.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, id)
	}

	return nil
}
