package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	CycleRepository       *CycleRepository
	CourseRepository      *CourseRepository
	StudentRepository     *StudentRepository
	AttendanceRepository  *AttendanceRepository
	RequirementRepository *RequirementRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		CycleRepository:       NewCycleRepository(db),
		CourseRepository:      NewCourseRepository(db),
		StudentRepository:     NewStudentRepository(db),
		AttendanceRepository:  NewAttendanceRepository(db),
		RequirementRepository: NewRequirementRepository(db),
	}
}
