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

// CourseController handles course management.
type CourseController struct {
	courseRepo *repositories.CourseRepository
	cycleRepo  *repositories.CycleRepository
}

// NewCourseController creates a new CourseController
func NewCourseController(courseRepo *repositories.CourseRepository, cycleRepo *repositories.CycleRepository) *CourseController {
	return &CourseController{
		courseRepo: courseRepo,
		cycleRepo:  cycleRepo,
	}
}

// GetCourses lists the courses of a cycle; without a cycleId query parameter
// it lists the active cycle's courses.
func (c *CourseController) GetCourses(ctx *gin.Context) {
	var cycleID int64
	if raw := ctx.Query("cycleId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cycle ID")))
			return
		}
		cycleID = id
	} else {
		cycle, err := c.cycleRepo.GetActive(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		cycleID = cycle.ID
	}

	courses, err := c.courseRepo.ListByCycle(ctx, cycleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses, Timestamp: time.Now()})
}

// GetCourseByID returns one course.
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")))
		return
	}

	course, err := c.courseRepo.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// CreateCourse creates a course in a cycle.
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").WithDetails(err.Error())))
		return
	}

	course := &models.Course{Name: req.Name, CycleID: req.CycleID}
	if _, err := c.courseRepo.Create(ctx, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// UpdateCourse renames a course.
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")))
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").WithDetails(err.Error())))
		return
	}

	course := &models.Course{ID: id, Name: req.Name}
	if err := c.courseRepo.Update(ctx, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course updated"},
		Timestamp: time.Now(),
	})
}

// DeleteCourse removes a course and everything under it.
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")))
		return
	}

	if err := c.courseRepo.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course deleted"},
		Timestamp: time.Now(),
	})
}
