package dto

// CreateStudentRequest is the payload for enrolling a student in a course.
type CreateStudentRequest struct {
	CourseID      int64  `json:"courseId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	NationalID    string `json:"nationalId"`
	Notes         string `json:"notes"`
	GuardianName  string `json:"guardianName"`
	GuardianPhone string `json:"guardianPhone"`
}

// UpdateStudentRequest updates a student's editable fields.
type UpdateStudentRequest struct {
	Name          string `json:"name" binding:"required"`
	NationalID    string `json:"nationalId"`
	Notes         string `json:"notes"`
	GuardianName  string `json:"guardianName"`
	GuardianPhone string `json:"guardianPhone"`
}
