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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student and returns the generated id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	query := `
		INSERT INTO students (course_id, name, national_id, notes, guardian_name, guardian_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		student.CourseID,
		student.Name,
		student.NationalID,
		student.Notes,
		student.GuardianName,
		student.GuardianPhone,
	).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", apperrors.ErrStudentAlreadyExists, student.Name)
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: id %d", apperrors.ErrCourseNotFound, student.CourseID)
		}
		return 0, fmt.Errorf("create student: %w", err)
	}

	student.ID = id
	return id, nil
}

// GetByID retrieves a student with its course name.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.course_id, s.name, s.national_id, s.notes,
		       s.guardian_name, s.guardian_phone, c.name
		FROM students s
		JOIN courses c ON s.course_id = c.id
		WHERE s.id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.CourseID,
		&student.Name,
		&student.NationalID,
		&student.Notes,
		&student.GuardianName,
		&student.GuardianPhone,
		&student.CourseName,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, fmt.Errorf("%w: id %d", apperrors.ErrStudentNotFound, id)
		}
		return nil, fmt.Errorf("get student: %w", err)
	}

	return &student, nil
}

// ListByCourse retrieves all students of a course ordered by name.
func (r *StudentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Student, error) {
	query := `
		SELECT id, course_id, name, national_id, notes, guardian_name, guardian_phone
		FROM students
		WHERE course_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// Search finds students of the active cycle whose name or national id
// contains the term, ordered by name. Matching ignores case and accents, so
// "garcia" finds "García".
func (r *StudentRepository) Search(ctx context.Context, term string) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.course_id, s.name, s.national_id, s.notes,
		       s.guardian_name, s.guardian_phone, c.name, cy.name
		FROM students s
		JOIN courses c ON s.course_id = c.id
		JOIN cycles cy ON c.cycle_id = cy.id
		WHERE (unaccent(s.name) ILIKE unaccent($1) OR s.national_id ILIKE $1)
			AND cy.active = TRUE
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.CourseID,
			&student.Name,
			&student.NationalID,
			&student.Notes,
			&student.GuardianName,
			&student.GuardianPhone,
			&student.CourseName,
			&student.CycleName,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update updates the editable fields of a student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, national_id = $2, notes = $3, guardian_name = $4, guardian_phone = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name,
		student.NationalID,
		student.Notes,
		student.GuardianName,
		student.GuardianPhone,
		student.ID,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %q", apperrors.ErrStudentAlreadyExists, student.Name)
		}
		return fmt.Errorf("update student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", apperrors.ErrStudentNotFound, student.ID)
	}

	return nil
}

// Delete removes a student and all rows that reference it (attendance,
// requirement completions) in a single transaction. The dependent deletes are
// issued explicitly rather than left to the schema.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM attendance WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("delete student attendance: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM requirement_completions WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("delete student requirement completions: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete student: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: id %d", apperrors.ErrStudentNotFound, id)
		}
		return nil
	})
}

func scanStudents(rows pgx.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.CourseID,
			&student.Name,
			&student.NationalID,
			&student.Notes,
			&student.GuardianName,
			&student.GuardianPhone,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
