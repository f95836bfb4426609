package dto

// CreateCourseRequest is the payload for creating a course in a cycle.
type CreateCourseRequest struct {
	Name    string `json:"name" binding:"required"`
	CycleID int64  `json:"cycleId" binding:"required"`
}

// UpdateCourseRequest renames a course.
type UpdateCourseRequest struct {
	Name string `json:"name" binding:"required"`
}
