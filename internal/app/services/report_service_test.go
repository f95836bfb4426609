package services

import (
	"testing"

	"github.com/dalvarez/asistencia/internal/app/models"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.Total != 0 {
		t.Errorf("Total = %d, want 0", stats.Total)
	}
	if stats.AbsenceScore != 0 {
		t.Errorf("AbsenceScore = %v, want 0", stats.AbsenceScore)
	}
	if stats.AbsencePct != 0 {
		t.Errorf("AbsencePct = %v, want 0 (no division by zero)", stats.AbsencePct)
	}
}

func TestComputeStatsCounts(t *testing.T) {
	statuses := []models.AttendanceStatus{
		models.StatusPresent, models.StatusPresent, models.StatusPresent,
		models.StatusLate, models.StatusLate,
		models.StatusAbsent,
		models.StatusExcused,
		models.StatusSuspended,
	}

	stats := ComputeStats(statuses)

	if stats.Present != 3 || stats.Late != 2 || stats.Absent != 1 || stats.Excused != 1 || stats.Suspended != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.Total != 8 {
		t.Errorf("Total = %d, want 8", stats.Total)
	}

	// absent(1) + suspended(1) + 0.25 * late(2) = 2.5
	if stats.AbsenceScore != 2.5 {
		t.Errorf("AbsenceScore = %v, want 2.5", stats.AbsenceScore)
	}

	// 2.5 / 8 = 31.25% rounded to one decimal
	if stats.AbsencePct != 31.3 {
		t.Errorf("AbsencePct = %v, want 31.3", stats.AbsencePct)
	}
}

func TestComputeStatsExcusedDoesNotScore(t *testing.T) {
	stats := ComputeStats([]models.AttendanceStatus{
		models.StatusExcused, models.StatusExcused, models.StatusPresent,
	})

	if stats.AbsenceScore != 0 {
		t.Errorf("AbsenceScore = %v, want 0 for excused-only marks", stats.AbsenceScore)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
}
