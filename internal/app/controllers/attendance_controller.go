package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/app/models/dto"
	"github.com/dalvarez/asistencia/internal/app/services"
	"github.com/dalvarez/asistencia/internal/middleware"
	"github.com/dalvarez/asistencia/internal/pkg/validation"
)

// AttendanceController handles marking and querying attendance.
type AttendanceController struct {
	attendanceService services.AttendanceService
	reportService     services.ReportService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService, reportService services.ReportService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		reportService:     reportService,
	}
}

// Mark upserts one student's status for a date. Marking the same
// student/date again overwrites the previous status.
func (c *AttendanceController) Mark(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data").WithDetails(err.Error())))
		return
	}

	date, err := validation.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Date must be yyyy-mm-dd")))
		return
	}

	id, err := c.attendanceService.Mark(ctx, req.StudentID, date, models.AttendanceStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"id": id, "studentId": req.StudentID, "date": req.Date, "status": req.Status},
		Timestamp: time.Now(),
	})
}

// DayView returns student id -> status for one course and date.
func (c *AttendanceController) DayView(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "courseId query parameter is required")))
		return
	}

	date, err := validation.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "date query parameter must be yyyy-mm-dd")))
		return
	}

	statuses, err := c.attendanceService.DayView(ctx, courseID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: statuses, Timestamp: time.Now()})
}

// History returns one student's marks, most recent first.
func (c *AttendanceController) History(ctx *gin.Context) {
	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	records, err := c.attendanceService.History(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: records, Timestamp: time.Now()})
}

// StudentStats aggregates one student's marks.
func (c *AttendanceController) StudentStats(ctx *gin.Context) {
	studentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	stats, err := c.reportService.StudentStats(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats, Timestamp: time.Now()})
}

// CourseReport aggregates a course's marks over a date range.
func (c *AttendanceController) CourseReport(ctx *gin.Context) {
	courseID, from, to, ok := c.rangeParams(ctx)
	if !ok {
		return
	}

	report, err := c.reportService.CourseReport(ctx, courseID, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: report, Timestamp: time.Now()})
}

// ExportRows returns the raw grouped-by-student, ordered-by-date rows that
// drive spreadsheet export.
func (c *AttendanceController) ExportRows(ctx *gin.Context) {
	courseID, from, to, ok := c.rangeParams(ctx)
	if !ok {
		return
	}

	rows, err := c.attendanceService.ExportRows(ctx, courseID, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rows, Timestamp: time.Now()})
}

// rangeParams parses the courseId/from/to query parameters shared by the
// report endpoints. Responds with 400 and returns ok=false on bad input.
func (c *AttendanceController) rangeParams(ctx *gin.Context) (courseID int64, from, to time.Time, ok bool) {
	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "courseId query parameter is required")))
		return 0, time.Time{}, time.Time{}, false
	}

	from, err = validation.ParseDate(ctx.Query("from"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "from query parameter must be yyyy-mm-dd")))
		return 0, time.Time{}, time.Time{}, false
	}

	to, err = validation.ParseDate(ctx.Query("to"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "to query parameter must be yyyy-mm-dd")))
		return 0, time.Time{}, time.Time{}, false
	}

	return courseID, from, to, true
}
