package models

// Student defines the student model based on the 'students' table.
type Student struct {
	ID            int64  `json:"id" db:"id"`
	CourseID      int64  `json:"courseId" db:"course_id"`
	Name          string `json:"name" db:"name"`
	NationalID    string `json:"nationalId" db:"national_id"`
	Notes         string `json:"notes" db:"notes"`
	GuardianName  string `json:"guardianName" db:"guardian_name"`
	GuardianPhone string `json:"guardianPhone" db:"guardian_phone"`

	// Relations (populated by joined queries)
	CourseName string `json:"courseName,omitempty"`
	CycleName  string `json:"cycleName,omitempty"`
}
