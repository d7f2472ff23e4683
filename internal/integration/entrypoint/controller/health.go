// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports the readiness of the API and its backing stores.
type HealthController struct {
	dbCheck    func() bool
	cacheCheck func() bool
}

// HealthResponse represents the health check response. The cache being down
// degrades the dashboard but never the API, so only the database drives the
// overall status.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbCheck, cacheCheck func() bool) *HealthController {
	return &HealthController{
		dbCheck:    dbCheck,
		cacheCheck: cacheCheck,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  checkStatus(h.dbCheck),
		Cache:     checkStatus(h.cacheCheck),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if response.Database != "connected" {
		response.Status = "degraded"
	}

	c.JSON(http.StatusOK, response)
}

func checkStatus(check func() bool) string {
	if check != nil && check() {
		return "connected"
	}
	return "disconnected"
}
