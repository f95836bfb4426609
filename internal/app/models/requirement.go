package models

// Requirement is an item students of a course must hand in or complete.
type Requirement struct {
	ID          int64  `json:"id" db:"id"`
	CourseID    int64  `json:"courseId" db:"course_id"`
	Description string `json:"description" db:"description"`
}

// RequirementStatus is a requirement together with one student's completion flag.
type RequirementStatus struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
