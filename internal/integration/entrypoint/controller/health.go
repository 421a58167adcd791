// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports liveness of the API and its dependencies. It is
// wired even when the database is unreachable, so the probe endpoint stays
// up while the rest of the API refuses traffic.
type HealthController struct {
	dbHealthChecker      func() bool
	storageHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Storage   string `json:"storage"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. Either
// checker may be nil, which reports that dependency as disconnected.
func NewHealthController(dbHealthChecker, storageHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:      dbHealthChecker,
		storageHealthChecker: storageHealthChecker,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	status := func(probe func() bool) string {
		if probe != nil && probe() {
			return "connected"
		}
		return "disconnected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  status(h.dbHealthChecker),
		Storage:   status(h.storageHealthChecker),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
