package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dalvarez/asistencia/internal/app/models"
	"github.com/dalvarez/asistencia/internal/app/models/dto"
	"github.com/dalvarez/asistencia/internal/app/repositories"
	"github.com/dalvarez/asistencia/internal/app/services"
	"github.com/dalvarez/asistencia/internal/middleware"
)

// UserController handles account administration.
type UserController struct {
	authService services.AuthService
	userRepo    *repositories.UserRepository
}

// NewUserController creates a new UserController
func NewUserController(authService services.AuthService, userRepo *repositories.UserRepository) *UserController {
	return &UserController{
		authService: authService,
		userRepo:    userRepo,
	}
}

// CreateUser creates an account.
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user data").WithDetails(err.Error())))
		return
	}

	user, err := c.authService.CreateUser(ctx, req.Username, req.Password, models.RoleType(req.Role))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.UserResponse{ID: user.ID, Username: user.Username, Role: string(user.Role)},
		Timestamp: time.Now(),
	})
}

// GetAllUsers lists accounts.
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userRepo.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserResponse{ID: u.ID, Username: u.Username, Role: string(u.Role)})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// DeleteUser removes an account.
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")))
		return
	}

	if err := c.userRepo.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "User deleted"},
		Timestamp: time.Now(),
	})
}
