package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dalvarez/asistencia/internal/app/controllers"
	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/app/models/dto"
	"github.com/dalvarez/asistencia/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	cycleController *controllers.CycleController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	attendanceController *controllers.AttendanceController,
	requirementController *controllers.RequirementController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// User management (admin only)
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			users.GET("", userController.GetAllUsers)
			users.POST("", userController.CreateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		// Cycle routes. Reads are open to any authenticated user; cycle
		// administration is admin only.
		cycles := authenticated.Group("/cycles")
		{
			cycles.GET("", cycleController.GetAllCycles)
			cycles.GET("/active", cycleController.GetActiveCycle)

			cyclesAdminProtected := cycles.Group("")
			cyclesAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				cyclesAdminProtected.POST("", cycleController.CreateCycle)
				cyclesAdminProtected.PUT("/:id/activate", cycleController.ActivateCycle)
				cyclesAdminProtected.DELETE("/:id", cycleController.DeleteCycle)
			}
		}

		// Course routes
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetCourses)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.POST("", courseController.CreateCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		// Student routes, including per-student attendance and requirement
		// lookups.
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetStudents)
			students.GET("/search", studentController.SearchStudents)
			students.GET("/:id", studentController.GetStudentByID)
			students.POST("", studentController.CreateStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)

			students.GET("/:id/attendance", attendanceController.History)
			students.GET("/:id/stats", attendanceController.StudentStats)
			students.GET("/:id/requirements", requirementController.GetStudentStatus)
		}

		// Attendance routes
		attendance := authenticated.Group("/attendance")
		{
			attendance.POST("", attendanceController.Mark)
			attendance.GET("", attendanceController.DayView)
			attendance.GET("/report", attendanceController.CourseReport)
			attendance.GET("/export", attendanceController.ExportRows)
		}

		// Requirement routes
		requirements := authenticated.Group("/requirements")
		{
			requirements.GET("", requirementController.GetRequirements)
			requirements.POST("", requirementController.CreateRequirement)
			requirements.PUT("/:id", requirementController.UpdateRequirement)
			requirements.DELETE("/:id", requirementController.DeleteRequirement)
			requirements.POST("/:id/completions/:studentId", requirementController.ToggleCompletion)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
