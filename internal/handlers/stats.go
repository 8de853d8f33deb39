// internal/handlers/stats.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/merchio-backend/internal/services"
	"github.com/javajoker/merchio-backend/internal/utils"
)

type StatsHandler struct {
	catalog *services.CatalogService
}

func NewStatsHandler(catalog *services.CatalogService) *StatsHandler {
	return &StatsHandler{catalog: catalog}
}

// GET /stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.catalog.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /dashboard
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.catalog.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, dashboard)
}
