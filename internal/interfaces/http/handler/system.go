package handler

import (
	"net/http"
	"time"

	"github.com/coldstore/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// SystemHandler serves liveness and readiness endpoints
type SystemHandler struct {
	db      *persistence.Database
	version string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// Healthz handles GET /healthz. The database ping makes it a readiness
// check: a 503 here should pull the instance out of rotation.
func (h *SystemHandler) Healthz(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	dbStatus := "up"

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
		dbStatus = "down"
	}

	c.JSON(code, gin.H{
		"status":   status,
		"version":  h.version,
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
