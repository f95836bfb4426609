package dto

// CreateRequirementRequest is the payload for adding a requirement to a course.
type CreateRequirementRequest struct {
	CourseID    int64  `json:"courseId" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// UpdateRequirementRequest is the payload for rewording a requirement.
type UpdateRequirementRequest struct {
	Description string `json:"description" binding:"required"`
}

// ToggleCompletionResponse reports the membership after a toggle.
type ToggleCompletionResponse struct {
	RequirementID int64 `json:"requirementId"`
	StudentID     int64 `json:"studentId"`
	Completed     bool  `json:"completed"`
}
