package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "users_username_key"}

	if !IsUniqueViolation(pgErr) {
		t.Error("expected unique violation to be detected")
	}
	if !IsUniqueViolation(fmt.Errorf("insert user: %w", pgErr)) {
		t.Error("expected wrapped unique violation to be detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: CodeForeignKeyViolation}) {
		t.Error("foreign key violation should not be a unique violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("plain error should not be a unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil should not be a unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeForeignKeyViolation}

	if !IsForeignKeyViolation(pgErr) {
		t.Error("expected foreign key violation to be detected")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: CodeUniqueViolation}) {
		t.Error("unique violation should not be a foreign key violation")
	}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "attendance_student_id_date_key"}

	if !IsDuplicateConstraintError(pgErr, "attendance_student_id_date_key") {
		t.Error("expected matching constraint to be detected")
	}
	if IsDuplicateConstraintError(pgErr, "users_username_key") {
		t.Error("different constraint name should not match")
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(pgx.ErrNoRows) {
		t.Error("expected pgx.ErrNoRows to be detected")
	}
	if !IsNoRows(fmt.Errorf("get student: %w", pgx.ErrNoRows)) {
		t.Error("expected wrapped pgx.ErrNoRows to be detected")
	}
	if IsNoRows(errors.New("boom")) {
		t.Error("plain error should not be no-rows")
	}
}
