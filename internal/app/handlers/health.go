package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck handles GET /api/health. It always reports healthy; a store
// error only zeroes cache_size.
func (h *Handler) HealthCheck(c *gin.Context) {
	size, err := h.store.Size(c.Request.Context())
	if err != nil {
		h.logger.Warn("Cache size unavailable", zap.Error(err))
		size = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"status":     "healthy",
		"backend":    h.backend,
		"timestamp":  h.timestamp(),
		"cache_size": size,
	})
}
