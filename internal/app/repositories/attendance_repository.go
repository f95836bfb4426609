package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/pkg/apperrors"
	"github.com/dalvarez/asistencia/internal/pkg/dberrors"
)

// AttendanceRepository handles database operations for attendance marks
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// Mark records a student's status for a date. The (student_id, date) pair is
// unique; a second mark for the same pair overwrites the status. The upsert is
// resolved atomically by the store, never read-then-write.
func (r *AttendanceRepository) Mark(ctx context.Context, studentID int64, date time.Time, status models.AttendanceStatus) (int64, error) {
	query := `
		INSERT INTO attendance (student_id, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, date)
		DO UPDATE SET status = EXCLUDED.status
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, studentID, date, status).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: id %d", apperrors.ErrStudentNotFound, studentID)
		}
		return 0, fmt.Errorf("mark attendance: %w", err)
	}

	return id, nil
}

// GetByStudentAndDate retrieves one attendance row by its logical key.
func (r *AttendanceRepository) GetByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (*models.Attendance, error) {
	query := `
		SELECT id, student_id, date, status
		FROM attendance
		WHERE student_id = $1 AND date = $2
	`

	var att models.Attendance
	err := r.db.QueryRow(ctx, query, studentID, date).Scan(
		&att.ID,
		&att.StudentID,
		&att.Date,
		&att.Status,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, fmt.Errorf("%w: student %d on %s",
				apperrors.ErrAttendanceNotFound, studentID, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}

	return &att, nil
}

// ByCourseAndDate returns student id -> status for one course on one date,
// the shape a day-view screen consumes.
func (r *AttendanceRepository) ByCourseAndDate(ctx context.Context, courseID int64, date time.Time) (map[int64]models.AttendanceStatus, error) {
	query := `
		SELECT a.student_id, a.status
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE a.date = $1 AND s.course_id = $2
	`

	rows, err := r.db.Query(ctx, query, date, courseID)
	if err != nil {
		return nil, fmt.Errorf("attendance by course and date: %w", err)
	}
	defer rows.Close()

	statuses := make(map[int64]models.AttendanceStatus)
	for rows.Next() {
		var studentID int64
		var status models.AttendanceStatus
		if err := rows.Scan(&studentID, &status); err != nil {
			return nil, err
		}
		statuses[studentID] = status
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// History returns all marks of one student, most recent date first.
func (r *AttendanceRepository) History(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	query := `
		SELECT id, student_id, date, status
		FROM attendance
		WHERE student_id = $1
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var att models.Attendance
		if err := rows.Scan(&att.ID, &att.StudentID, &att.Date, &att.Status); err != nil {
			return nil, err
		}
		records = append(records, &att)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// StatusesByCourseRange returns the (student, status) pairs of a course over a
// date range. Report aggregation happens in the service layer.
func (r *AttendanceRepository) StatusesByCourseRange(ctx context.Context, courseID int64, from, to time.Time) ([]models.StudentStatus, error) {
	query := `
		SELECT a.student_id, a.status
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE s.course_id = $1 AND a.date >= $2 AND a.date <= $3
	`

	rows, err := r.db.Query(ctx, query, courseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("attendance statuses by range: %w", err)
	}
	defer rows.Close()

	var result []models.StudentStatus
	for rows.Next() {
		var ss models.StudentStatus
		if err := rows.Scan(&ss.StudentID, &ss.Status); err != nil {
			return nil, err
		}
		result = append(result, ss)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// StatusesByStudent returns all statuses ever recorded for one student.
func (r *AttendanceRepository) StatusesByStudent(ctx context.Context, studentID int64) ([]models.AttendanceStatus, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status FROM attendance WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, fmt.Errorf("attendance statuses by student: %w", err)
	}
	defer rows.Close()

	var statuses []models.AttendanceStatus
	for rows.Next() {
		var status models.AttendanceStatus
		if err := rows.Scan(&status); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// ListRange returns every mark of a course over [from, to], grouped by
// student and ordered by date. This is the tabular feed the spreadsheet
// export is built from.
func (r *AttendanceRepository) ListRange(ctx context.Context, courseID int64, from, to time.Time) ([]models.AttendanceEntry, error) {
	query := `
		SELECT a.student_id, s.name, a.date, a.status
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE s.course_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY s.name, s.id, a.date
	`

	rows, err := r.db.Query(ctx, query, courseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("attendance range: %w", err)
	}
	defer rows.Close()

	var entries []models.AttendanceEntry
	for rows.Next() {
		var e models.AttendanceEntry
		if err := rows.Scan(&e.StudentID, &e.StudentName, &e.Date, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// CountForStudent returns the number of attendance rows of one student.
func (r *AttendanceRepository) CountForStudent(ctx context.Context, studentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance WHERE student_id = $1`, studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}

	return count, nil
}
