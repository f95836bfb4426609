package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dalvarez/asistencia/internal/app/migrations"
	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/pkg/apperrors"
)

// testPool connects to the database named by TEST_DATABASE_URL, applies the
// migrations and wipes all tables. Tests are skipped when the variable is not
// set so the suite stays runnable without a local postgres.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool)
	migrationsDir := filepath.Join("..", "..", "..", "migrations")
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE users, cycles, courses, students, attendance,
		         requirements, requirement_completions
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return pool
}

// fixture creates an active cycle, a course in it and one student, returning
// the course and student ids.
func fixture(t *testing.T, pool *pgxpool.Pool) (courseID, studentID int64) {
	t.Helper()
	ctx := context.Background()

	cycleID, err := NewCycleRepository(pool).Create(ctx, "2026")
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}

	courseID, err = NewCourseRepository(pool).Create(ctx, &models.Course{
		Name:    "1A",
		CycleID: cycleID,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	studentID, err = NewStudentRepository(pool).Create(ctx, &models.Student{
		CourseID:   courseID,
		Name:       "Ana Torres",
		NationalID: "12345678",
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}

	return courseID, studentID
}

func TestAttendanceMarkOverwrites(t *testing.T) {
	pool := testPool(t)
	_, studentID := fixture(t, pool)
	repo := NewAttendanceRepository(pool)
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	firstID, err := repo.Mark(ctx, studentID, day, models.StatusPresent)
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}

	secondID, err := repo.Mark(ctx, studentID, day, models.StatusLate)
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if firstID != secondID {
		t.Errorf("remark created a new row: ids %d and %d", firstID, secondID)
	}

	count, err := repo.CountForStudent(ctx, studentID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 attendance row, got %d", count)
	}

	att, err := repo.GetByStudentAndDate(ctx, studentID, day)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if att.Status != models.StatusLate {
		t.Errorf("expected status %q after remark, got %q", models.StatusLate, att.Status)
	}
}

func TestAttendanceMarkUnknownStudent(t *testing.T) {
	pool := testPool(t)
	fixture(t, pool)
	repo := NewAttendanceRepository(pool)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := repo.Mark(context.Background(), 99999, day, models.StatusPresent)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentDeleteRemovesDependents(t *testing.T) {
	pool := testPool(t)
	courseID, studentID := fixture(t, pool)
	ctx := context.Background()

	studentRepo := NewStudentRepository(pool)
	attendanceRepo := NewAttendanceRepository(pool)
	requirementRepo := NewRequirementRepository(pool)

	// A second student in the same course must survive the delete.
	otherID, err := studentRepo.Create(ctx, &models.Student{
		CourseID:   courseID,
		Name:       "Benito Rojas",
		NationalID: "87654321",
	})
	if err != nil {
		t.Fatalf("create other student: %v", err)
	}

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for _, id := range []int64{studentID, otherID} {
		if _, err := attendanceRepo.Mark(ctx, id, day, models.StatusAbsent); err != nil {
			t.Fatalf("mark: %v", err)
		}
	}

	reqID, err := requirementRepo.Create(ctx, &models.Requirement{
		CourseID:    courseID,
		Description: "Vaccination card",
	})
	if err != nil {
		t.Fatalf("create requirement: %v", err)
	}
	if _, err := requirementRepo.ToggleCompletion(ctx, reqID, studentID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := studentRepo.Delete(ctx, studentID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := studentRepo.GetByID(ctx, studentID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound after delete, got %v", err)
	}

	count, err := attendanceRepo.CountForStudent(ctx, studentID)
	if err != nil {
		t.Fatalf("count attendance: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 attendance rows after delete, got %d", count)
	}

	completions, err := requirementRepo.CountCompletionsForStudent(ctx, studentID)
	if err != nil {
		t.Fatalf("count completions: %v", err)
	}
	if completions != 0 {
		t.Errorf("expected 0 completion rows after delete, got %d", completions)
	}

	// The sibling student's mark is untouched.
	otherCount, err := attendanceRepo.CountForStudent(ctx, otherID)
	if err != nil {
		t.Fatalf("count other attendance: %v", err)
	}
	if otherCount != 1 {
		t.Errorf("expected sibling's attendance to survive, got %d rows", otherCount)
	}
}

func TestStudentDeleteNotFound(t *testing.T) {
	pool := testPool(t)
	fixture(t, pool)

	err := NewStudentRepository(pool).Delete(context.Background(), 99999)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestToggleCompletionFlips(t *testing.T) {
	pool := testPool(t)
	courseID, studentID := fixture(t, pool)
	repo := NewRequirementRepository(pool)
	ctx := context.Background()

	reqID, err := repo.Create(ctx, &models.Requirement{
		CourseID:    courseID,
		Description: "Signed consent form",
	})
	if err != nil {
		t.Fatalf("create requirement: %v", err)
	}

	completed, err := repo.ToggleCompletion(ctx, reqID, studentID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !completed {
		t.Error("first toggle should mark the requirement completed")
	}

	done, err := repo.IsCompleted(ctx, reqID, studentID)
	if err != nil {
		t.Fatalf("is completed: %v", err)
	}
	if !done {
		t.Error("completion pair missing after first toggle")
	}

	completed, err = repo.ToggleCompletion(ctx, reqID, studentID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if completed {
		t.Error("second toggle should clear the completion")
	}

	done, err = repo.IsCompleted(ctx, reqID, studentID)
	if err != nil {
		t.Fatalf("is completed: %v", err)
	}
	if done {
		t.Error("completion pair present after second toggle")
	}
}

func TestRequirementStatusForStudent(t *testing.T) {
	pool := testPool(t)
	courseID, studentID := fixture(t, pool)
	repo := NewRequirementRepository(pool)
	ctx := context.Background()

	firstID, err := repo.Create(ctx, &models.Requirement{CourseID: courseID, Description: "Photo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Requirement{CourseID: courseID, Description: "Birth certificate"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.ToggleCompletion(ctx, firstID, studentID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	statuses, err := repo.StatusForStudent(ctx, courseID, studentID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(statuses))
	}
	if !statuses[0].Completed {
		t.Error("first requirement should be completed")
	}
	if statuses[1].Completed {
		t.Error("second requirement should be pending")
	}
}

func TestCycleSingleActive(t *testing.T) {
	pool := testPool(t)
	repo := NewCycleRepository(pool)
	ctx := context.Background()

	firstID, err := repo.Create(ctx, "2025")
	if err != nil {
		t.Fatalf("create first cycle: %v", err)
	}
	secondID, err := repo.Create(ctx, "2026")
	if err != nil {
		t.Fatalf("create second cycle: %v", err)
	}

	active, err := repo.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != secondID {
		t.Errorf("expected newest cycle %d active, got %d", secondID, active.ID)
	}

	if err := repo.Activate(ctx, firstID); err != nil {
		t.Fatalf("activate: %v", err)
	}

	active, err = repo.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != firstID {
		t.Errorf("expected cycle %d active after switch, got %d", firstID, active.ID)
	}

	var activeCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cycles WHERE active`).Scan(&activeCount); err != nil {
		t.Fatalf("count active: %v", err)
	}
	if activeCount != 1 {
		t.Errorf("expected exactly one active cycle, got %d", activeCount)
	}
}

func TestCycleDuplicateName(t *testing.T) {
	pool := testPool(t)
	repo := NewCycleRepository(pool)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "2026"); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := repo.Create(ctx, "2026")
	if !errors.Is(err, apperrors.ErrCycleAlreadyExists) {
		t.Errorf("expected ErrCycleAlreadyExists, got %v", err)
	}
}

func TestUserUsernameUnique(t *testing.T) {
	pool := testPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.User{
		Username: "direccion",
		Password: "x",
		Role:     models.RoleAdmin,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := repo.Create(ctx, &models.User{
		Username: "direccion",
		Password: "y",
		Role:     models.RoleTeacher,
	})
	if !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Errorf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestStudentSearchActiveCycleOnly(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	cycleRepo := NewCycleRepository(pool)
	courseRepo := NewCourseRepository(pool)
	studentRepo := NewStudentRepository(pool)

	// Creating the second cycle deactivates the first one.
	oldCycleID, err := cycleRepo.Create(ctx, "2025")
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}
	newCycleID, err := cycleRepo.Create(ctx, "2026")
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}

	oldCourseID, err := courseRepo.Create(ctx, &models.Course{Name: "1A", CycleID: oldCycleID})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	newCourseID, err := courseRepo.Create(ctx, &models.Course{Name: "1A", CycleID: newCycleID})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	seed := []struct {
		courseID   int64
		name       string
		nationalID string
	}{
		{newCourseID, "María García", "11111111"},
		{newCourseID, "Pedro Garza", "22222222"},
		{newCourseID, "Luisa Méndez", "33334444"},
		{oldCourseID, "Carlos García", "55555555"},
	}
	for _, s := range seed {
		if _, err := studentRepo.Create(ctx, &models.Student{
			CourseID:   s.courseID,
			Name:       s.name,
			NationalID: s.nationalID,
		}); err != nil {
			t.Fatalf("create student %q: %v", s.name, err)
		}
	}

	// Case and accents do not matter and only the active cycle is searched,
	// so Carlos García from 2025 stays out.
	for _, term := range []string{"gar", "GAR", "Gar"} {
		results, err := studentRepo.Search(ctx, term)
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(results) != 2 {
			t.Fatalf("search %q: expected 2 students, got %d", term, len(results))
		}
		if results[0].Name != "María García" || results[1].Name != "Pedro Garza" {
			t.Errorf("search %q: unexpected order %q, %q", term, results[0].Name, results[1].Name)
		}
		if results[0].CycleName != "2026" {
			t.Errorf("search %q: expected cycle 2026, got %q", term, results[0].CycleName)
		}
	}

	for _, term := range []string{"garcía", "garcia", "GARCÍA", "GARCIA"} {
		results, err := studentRepo.Search(ctx, term)
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(results) != 1 || results[0].Name != "María García" {
			t.Errorf("search %q: expected only María García, got %v", term, results)
		}
	}

	// National id matches too.
	results, err := studentRepo.Search(ctx, "3333")
	if err != nil {
		t.Fatalf("search by national id: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Luisa Méndez" {
		t.Errorf("expected Luisa Méndez by national id, got %v", results)
	}
}

func TestStudentUpdateNotFound(t *testing.T) {
	pool := testPool(t)
	fixture(t, pool)

	err := NewStudentRepository(pool).Update(context.Background(), &models.Student{
		ID:   99999,
		Name: "Nobody",
	})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestCourseDeleteCascadesToStudents(t *testing.T) {
	pool := testPool(t)
	courseID, studentID := fixture(t, pool)
	ctx := context.Background()

	if err := NewCourseRepository(pool).Delete(ctx, courseID); err != nil {
		t.Fatalf("delete course: %v", err)
	}

	_, err := NewStudentRepository(pool).GetByID(ctx, studentID)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound after course delete, got %v", err)
	}
}
