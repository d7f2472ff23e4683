// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/application/usecase/goal"
	domainerror "github.com/financaspro/backend/internal/domain/error"
	"github.com/financaspro/backend/internal/integration/entrypoint/dto"
	"github.com/financaspro/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles goal endpoints.
type GoalController struct {
	listUseCase    *goal.ListGoalsUseCase
	createUseCase  *goal.CreateGoalUseCase
	updateUseCase  *goal.UpdateGoalUseCase
	depositUseCase *goal.DepositGoalUseCase
	deleteUseCase  *goal.DeleteGoalUseCase
	overviewCache  adapter.OverviewCache
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	depositUseCase *goal.DepositGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	overviewCache adapter.OverviewCache,
) *GoalController {
	return &GoalController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		depositUseCase: depositUseCase,
		deleteUseCase:  deleteUseCase,
		overviewCache:  overviewCache,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		OwnerID: session.OwnerID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve goals",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	input := goal.CreateGoalInput{
		OwnerID:       session.OwnerID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	}

	if req.Deadline != nil {
		deadline, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid deadline format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDeadline),
			})
			return
		}
		input.Deadline = &deadline
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	c.invalidateOverview(ctx, session.OwnerID)

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(&goal.GoalWithProgress{
		Goal:     output.Goal,
		Progress: goal.ProgressFor(output.Goal, time.Now().UTC()),
	}))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := goal.UpdateGoalInput{
		OwnerID:       session.OwnerID,
		GoalID:        goalID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		ClearDeadline: req.ClearDeadline,
	}

	if req.Deadline != nil {
		deadline, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid deadline format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDeadline),
			})
			return
		}
		input.Deadline = &deadline
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	c.invalidateOverview(ctx, session.OwnerID)

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(&goal.GoalWithProgress{
		Goal:     output.Goal,
		Progress: goal.ProgressFor(output.Goal, time.Now().UTC()),
	}))
}

// Deposit handles POST /goals/:id/deposit requests.
func (c *GoalController) Deposit(ctx *gin.Context) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	var req dto.DepositGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidDepositAmount),
		})
		return
	}

	output, err := c.depositUseCase.Execute(ctx.Request.Context(), goal.DepositGoalInput{
		OwnerID: session.OwnerID,
		GoalID:  goalID,
		Amount:  req.Amount,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	c.invalidateOverview(ctx, session.OwnerID)

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(&goal.GoalWithProgress{
		Goal:     output.Goal,
		Progress: goal.ProgressFor(output.Goal, time.Now().UTC()),
	}))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		OwnerID: session.OwnerID,
		GoalID:  goalID,
	}); err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	c.invalidateOverview(ctx, session.OwnerID)

	ctx.Status(http.StatusNoContent)
}

// invalidateOverview drops the owner's cached overview after a mutation.
func (c *GoalController) invalidateOverview(ctx *gin.Context, ownerID uuid.UUID) {
	if err := c.overviewCache.Invalidate(ctx.Request.Context(), ownerID); err != nil {
		slog.Warn("Failed to invalidate overview cache", "owner_id", ownerID, "error", err)
	}
}

// handleGoalError handles goal errors and returns appropriate HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		ctx.JSON(statusCodeForGoalError(goalErr.Code), dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForGoalError maps goal error codes to HTTP status codes.
func statusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeMissingGoalName,
		domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidCurrentAmount,
		domainerror.ErrCodeInvalidDepositAmount,
		domainerror.ErrCodeInvalidDeadline,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
