package handler

import (
	"net/http"

	"github.com/noahjmorrison/onnaflips/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/api")
	{
		stats.GET("/stats", h.GetStats)
		stats.GET("/analytics", h.GetAnalytics)
	}
}

// @Summary      Get Summary Statistics
// @Description  Totals, averages, monthly profit breakdown and top rankings over the whole ledger
// @Tags         Statistics
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /api/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"data":    stats,
	})
}

// @Summary      Get Deep Analytics
// @Description  Category, bracket, negotiation, aging and scorecard breakdowns over sold items
// @Tags         Statistics
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /api/analytics [get]
func (h *StatsHandler) GetAnalytics(c *gin.Context) {
	deep, err := h.statsService.GetAnalytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"data":    deep,
	})
}
