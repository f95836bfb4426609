package services

import (
	"errors"
	"testing"
	"time"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/pkg/apperrors"
)

func TestValidateMarkAllowsWeekend(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	// Saturday classes exist; a weekend date must not block the mark.
	if err := validateMark(models.StatusPresent, saturday, now); err != nil {
		t.Errorf("weekend mark rejected: %v", err)
	}

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if err := validateMark(models.StatusAbsent, sunday, now); err != nil {
		t.Errorf("weekend mark rejected: %v", err)
	}
}

func TestValidateMarkRejectsFutureDate(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	err := validateMark(models.StatusPresent, tomorrow, now)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("validateMark(future) = %v, want ErrValidationFailed", err)
	}

	// Same calendar day is not future, regardless of the time of day.
	today := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if err := validateMark(models.StatusPresent, today, now); err != nil {
		t.Errorf("same-day mark rejected: %v", err)
	}
}

func TestValidateMarkRejectsUnknownStatus(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	err := validateMark(models.AttendanceStatus("vacationing"), day, now)
	if !errors.Is(err, apperrors.ErrInvalidStatus) {
		t.Errorf("validateMark(bad status) = %v, want ErrInvalidStatus", err)
	}
}
