package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler serves health and readiness probes
type SystemHandler struct {
	BaseHandler
	db      *gorm.DB
	name    string
	version string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, name, version string) *SystemHandler {
	return &SystemHandler{db: db, name: name, version: version, started: time.Now()}
}

// Health reports liveness plus database reachability
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	if sqlDB, err := h.db.DB(); err != nil {
		status, dbStatus = "degraded", "unreachable"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		status, dbStatus = "degraded", "unreachable"
	}

	h.Success(c, gin.H{
		"status":   status,
		"name":     h.name,
		"version":  h.version,
		"uptime":   time.Since(h.started).String(),
		"database": dbStatus,
	})
}
