package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dalvarez/asistencia/internal/app/models/dto"
	"github.com/dalvarez/asistencia/internal/app/repositories"
	"github.com/dalvarez/asistencia/internal/middleware"
)

// CycleController handles school-year cycle management.
type CycleController struct {
	cycleRepo *repositories.CycleRepository
}

// NewCycleController creates a new CycleController
func NewCycleController(cycleRepo *repositories.CycleRepository) *CycleController {
	return &CycleController{
		cycleRepo: cycleRepo,
	}
}

// GetAllCycles lists cycles, newest first.
func (c *CycleController) GetAllCycles(ctx *gin.Context) {
	cycles, err := c.cycleRepo.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: cycles, Timestamp: time.Now()})
}

// GetActiveCycle returns the single active cycle.
func (c *CycleController) GetActiveCycle(ctx *gin.Context) {
	cycle, err := c.cycleRepo.GetActive(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: cycle, Timestamp: time.Now()})
}

// CreateCycle creates a cycle and makes it active.
func (c *CycleController) CreateCycle(ctx *gin.Context) {
	var req dto.CreateCycleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cycle data").WithDetails(err.Error())))
		return
	}

	id, err := c.cycleRepo.Create(ctx, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      gin.H{"id": id, "name": req.Name, "active": true},
		Timestamp: time.Now(),
	})
}

// ActivateCycle makes the given cycle the active one.
func (c *CycleController) ActivateCycle(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cycle ID")))
		return
	}

	if err := c.cycleRepo.Activate(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Cycle activated"},
		Timestamp: time.Now(),
	})
}

// DeleteCycle removes a cycle and everything under it.
func (c *CycleController) DeleteCycle(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cycle ID")))
		return
	}

	if err := c.cycleRepo.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Cycle deleted"},
		Timestamp: time.Now(),
	})
}
