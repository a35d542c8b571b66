package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/investor-hub/backend/internal/cache"
	"github.com/emilythestrangee/investor-hub/backend/internal/database"
)

type HealthHandler struct {
	db     database.Service
	counts *cache.VoteCounts
}

func NewHealthHandler(db database.Service, counts *cache.VoteCounts) *HealthHandler {
	return &HealthHandler{db: db, counts: counts}
}

// Health reports database and cache status. A down cache does not fail the
// check since the API serves counts without it.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.db.Health(ctx)
	redisStatus := h.counts.Health(ctx)

	status := http.StatusOK
	if db["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":   db["status"],
		"database": db,
		"redis":    redisStatus,
	})
}
