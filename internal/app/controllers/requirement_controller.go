package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/app/models/dto"
	"github.com/dalvarez/asistencia/internal/app/repositories"
	"github.com/dalvarez/asistencia/internal/middleware"
)

// RequirementController handles course requirements and their per-student
// completion marks.
type RequirementController struct {
	requirementRepo *repositories.RequirementRepository
}

// NewRequirementController creates a new RequirementController
func NewRequirementController(requirementRepo *repositories.RequirementRepository) *RequirementController {
	return &RequirementController{
		requirementRepo: requirementRepo,
	}
}

// GetRequirements lists the requirements of a course.
func (c *RequirementController) GetRequirements(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "courseId query parameter is required")))
		return
	}

	reqs, err := c.requirementRepo.ListByCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: reqs, Timestamp: time.Now()})
}

// CreateRequirement adds a requirement to a course.
func (c *RequirementController) CreateRequirement(ctx *gin.Context) {
	var req dto.CreateRequirementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement data").WithDetails(err.Error())))
		return
	}

	requirement := &models.Requirement{
		CourseID:    req.CourseID,
		Description: req.Description,
	}

	if _, err := c.requirementRepo.Create(ctx, requirement); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: requirement, Timestamp: time.Now()})
}

// UpdateRequirement changes a requirement's description.
func (c *RequirementController) UpdateRequirement(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement ID")))
		return
	}

	var req dto.UpdateRequirementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement data").WithDetails(err.Error())))
		return
	}

	requirement := &models.Requirement{
		ID:          id,
		Description: req.Description,
	}

	if err := c.requirementRepo.Update(ctx, requirement); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: requirement, Timestamp: time.Now()})
}

// DeleteRequirement removes a requirement and its completion marks.
func (c *RequirementController) DeleteRequirement(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement ID")))
		return
	}

	if err := c.requirementRepo.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ToggleCompletion flips the completion mark of one requirement for one
// student and reports the resulting state.
func (c *RequirementController) ToggleCompletion(ctx *gin.Context) {
	requirementID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid requirement ID")))
		return
	}

	studentID, err := strconv.ParseInt(ctx.Param("studentId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	completed, err := c.requirementRepo.ToggleCompletion(ctx, requirementID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ToggleCompletionResponse{
			RequirementID: requirementID,
			StudentID:     studentID,
			Completed:     completed,
		},
		Timestamp: time.Now(),
	})
}

// GetStudentStatus returns every requirement of a course with one student's
// completion flag.
func (c *RequirementController) GetStudentStatus(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "courseId query parameter is required")))
		return
	}

	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	statuses, err := c.requirementRepo.StatusForStudent(ctx, courseID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: statuses, Timestamp: time.Now()})
}
