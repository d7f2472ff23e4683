// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/application/usecase/dashboard"
	domainerror "github.com/financaspro/backend/internal/domain/error"
	"github.com/financaspro/backend/internal/integration/entrypoint/dto"
	"github.com/financaspro/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles the dashboard overview endpoint.
type DashboardController struct {
	overviewUseCase *dashboard.GetOverviewUseCase
	overviewCache   adapter.OverviewCache
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	overviewUseCase *dashboard.GetOverviewUseCase,
	overviewCache adapter.OverviewCache,
) *DashboardController {
	return &DashboardController{
		overviewUseCase: overviewUseCase,
		overviewCache:   overviewCache,
	}
}

// Overview handles GET /dashboard/overview requests. The serialized response
// is cached per owner; mutation endpoints invalidate it. Cache failures are
// treated as misses so Redis being down never takes the dashboard with it.
func (c *DashboardController) Overview(ctx *gin.Context) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	if payload, err := c.overviewCache.Get(ctx.Request.Context(), session.OwnerID); err == nil {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	} else if !errors.Is(err, adapter.ErrCacheMiss) {
		slog.Warn("Failed to read overview cache", "owner_id", session.OwnerID, "error", err)
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), dashboard.GetOverviewInput{
		OwnerID:    session.OwnerID,
		OwnerEmail: session.Email,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	response := dto.ToOverviewResponse(output)

	payload, err := json.Marshal(response)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to serialize overview",
		})
		return
	}

	if err := c.overviewCache.Set(ctx.Request.Context(), session.OwnerID, payload); err != nil {
		slog.Warn("Failed to write overview cache", "owner_id", session.OwnerID, "error", err)
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		status := http.StatusInternalServerError
		if dashErr.Code == domainerror.ErrCodeInvalidPeriodKey || dashErr.Code == domainerror.ErrCodeInvalidWindowSize {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
