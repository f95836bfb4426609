package services

import (
	"context"
	"math"
	"time"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/app/repositories"
)

// ReportService defines the interface for attendance aggregation
type ReportService interface {
	CourseReport(ctx context.Context, courseID int64, from, to time.Time) ([]models.StudentReport, error)
	StudentStats(ctx context.Context, studentID int64) (*models.AttendanceStats, error)
}

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	studentRepo    *repositories.StudentRepository
	attendanceRepo *repositories.AttendanceRepository
}

// NewReportService creates a new report service instance
func NewReportService(studentRepo *repositories.StudentRepository, attendanceRepo *repositories.AttendanceRepository) ReportService {
	return &reportServiceImpl{
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
	}
}

// CourseReport aggregates the marks of every student of a course over a date
// range. Students with no marks appear with zeroed stats.
func (s *reportServiceImpl) CourseReport(ctx context.Context, courseID int64, from, to time.Time) ([]models.StudentReport, error) {
	students, err := s.studentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	rows, err := s.attendanceRepo.StatusesByCourseRange(ctx, courseID, from, to)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int64][]models.AttendanceStatus)
	for _, row := range rows {
		byStudent[row.StudentID] = append(byStudent[row.StudentID], row.Status)
	}

	report := make([]models.StudentReport, 0, len(students))
	for _, st := range students {
		report = append(report, models.StudentReport{
			StudentID:     st.ID,
			Name:          st.Name,
			NationalID:    st.NationalID,
			GuardianName:  st.GuardianName,
			GuardianPhone: st.GuardianPhone,
			Notes:         st.Notes,
			Stats:         ComputeStats(byStudent[st.ID]),
		})
	}

	return report, nil
}

// StudentStats aggregates every mark ever recorded for one student.
func (s *reportServiceImpl) StudentStats(ctx context.Context, studentID int64) (*models.AttendanceStats, error) {
	// Existence check so a bogus id reads as not-found, not as an empty report.
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	statuses, err := s.attendanceRepo.StatusesByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(statuses)
	return &stats, nil
}

// ComputeStats counts statuses and derives the weighted absence score and
// percentage: absent and suspended count full, late a quarter, excused not
// at all.
func ComputeStats(statuses []models.AttendanceStatus) models.AttendanceStats {
	var stats models.AttendanceStats
	for _, status := range statuses {
		switch status {
		case models.StatusPresent:
			stats.Present++
		case models.StatusLate:
			stats.Late++
		case models.StatusAbsent:
			stats.Absent++
		case models.StatusExcused:
			stats.Excused++
		case models.StatusSuspended:
			stats.Suspended++
		}
	}

	stats.Total = stats.Present + stats.Late + stats.Absent + stats.Excused + stats.Suspended
	stats.AbsenceScore = float64(stats.Absent) + float64(stats.Suspended) + float64(stats.Late)*models.LateAbsenceWeight

	if stats.Total > 0 {
		stats.AbsencePct = math.Round(stats.AbsenceScore/float64(stats.Total)*1000) / 10
	}

	return stats
}
