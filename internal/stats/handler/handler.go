package handler

import (
	"net/http"
	"strconv"

	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/stats"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	uc     stats.UseCase
	logger logger.ZapLogger
}

func NewStatsHandler(uc stats.UseCase, log logger.ZapLogger) *StatsHandler {
	return &StatsHandler{uc: uc, logger: log}
}

// Dashboard handles GET /api/stats. An optional ?threshold= overrides the
// low-stock cutoff; an explicit 0 is honored, only an absent parameter falls
// back to the default.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	var threshold *int64
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		threshold = &parsed
	}

	result, err := h.uc.Dashboard(c.Request.Context(), threshold)
	if err != nil {
		h.logger.Error("stats request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, result)
}
