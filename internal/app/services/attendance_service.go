package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/app/repositories"
	"github.com/dalvarez/asistencia/internal/pkg/apperrors"
	"github.com/dalvarez/asistencia/internal/pkg/logger"
	"github.com/dalvarez/asistencia/internal/pkg/validation"
)

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	Mark(ctx context.Context, studentID int64, date time.Time, status models.AttendanceStatus) (int64, error)
	DayView(ctx context.Context, courseID int64, date time.Time) (map[int64]models.AttendanceStatus, error)
	History(ctx context.Context, studentID int64) ([]*models.Attendance, error)
	ExportRows(ctx context.Context, courseID int64, from, to time.Time) ([]models.AttendanceEntry, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	attendanceRepo *repositories.AttendanceRepository
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(attendanceRepo *repositories.AttendanceRepository) AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
	}
}

// Mark validates and upserts one attendance mark.
func (s *attendanceServiceImpl) Mark(ctx context.Context, studentID int64, date time.Time, status models.AttendanceStatus) (int64, error) {
	if err := validateMark(status, date, time.Now()); err != nil {
		return 0, err
	}

	// Weekend marks are unusual but legitimate (makeup classes), so they are
	// saved with a warning rather than rejected.
	if validation.IsWeekend(date) {
		logger.Warn().
			Int64("studentId", studentID).
			Str("date", date.Format(validation.DateLayout)).
			Msg("Marking attendance on a weekend")
	}

	return s.attendanceRepo.Mark(ctx, studentID, date, status)
}

// validateMark rejects unknown statuses and future dates. Weekends pass.
func validateMark(status models.AttendanceStatus, date, now time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}

	if validation.IsFutureDate(date, now) {
		return fmt.Errorf("%w: %s is in the future", apperrors.ErrValidationFailed, date.Format(validation.DateLayout))
	}

	return nil
}

// DayView returns the marks of one course on one date keyed by student.
func (s *attendanceServiceImpl) DayView(ctx context.Context, courseID int64, date time.Time) (map[int64]models.AttendanceStatus, error) {
	return s.attendanceRepo.ByCourseAndDate(ctx, courseID, date)
}

// History returns one student's marks, most recent first.
func (s *attendanceServiceImpl) History(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	return s.attendanceRepo.History(ctx, studentID)
}

// ExportRows returns the grouped-by-student, ordered-by-date rows that feed
// the spreadsheet export.
func (s *attendanceServiceImpl) ExportRows(ctx context.Context, courseID int64, from, to time.Time) ([]models.AttendanceEntry, error) {
	return s.attendanceRepo.ListRange(ctx, courseID, from, to)
}
