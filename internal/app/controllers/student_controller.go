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

// StudentController handles student management and search.
type StudentController struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentController creates a new StudentController
func NewStudentController(studentRepo *repositories.StudentRepository) *StudentController {
	return &StudentController{
		studentRepo: studentRepo,
	}
}

// GetStudents lists the students of a course.
func (c *StudentController) GetStudents(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "courseId query parameter is required")))
		return
	}

	students, err := c.studentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: students, Timestamp: time.Now()})
}

// SearchStudents finds students of the active cycle by name or national id,
// case-insensitively.
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	term := ctx.Query("q")
	if term == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "q query parameter is required")))
		return
	}

	students, err := c.studentRepo.Search(ctx, term)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: students, Timestamp: time.Now()})
}

// GetStudentByID returns one student with its course name.
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	student, err := c.studentRepo.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: student, Timestamp: time.Now()})
}

// CreateStudent enrolls a student in a course.
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data").WithDetails(err.Error())))
		return
	}

	student := &models.Student{
		CourseID:      req.CourseID,
		Name:          req.Name,
		NationalID:    req.NationalID,
		Notes:         req.Notes,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
	}

	if _, err := c.studentRepo.Create(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: student, Timestamp: time.Now()})
}

// UpdateStudent updates a student's editable fields.
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data").WithDetails(err.Error())))
		return
	}

	student := &models.Student{
		ID:            id,
		Name:          req.Name,
		NationalID:    req.NationalID,
		Notes:         req.Notes,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
	}

	if err := c.studentRepo.Update(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student updated"},
		Timestamp: time.Now(),
	})
}

// DeleteStudent removes a student and all of its attendance and requirement
// completion rows.
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	if err := c.studentRepo.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student deleted"},
		Timestamp: time.Now(),
	})
}
