package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClearCache handles POST /api/cache/clear.
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		h.fail(c, fmt.Errorf("clear cache: %w", err))
		return
	}

	h.logger.Info("Cache cleared")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Cache cleared successfully",
		"backend":   h.backend,
		"timestamp": h.timestamp(),
	})
}

// CacheStats handles GET /api/cache/stats. Keys are returned in full,
// raw query text included.
func (h *Handler) CacheStats(c *gin.Context) {
	ctx := c.Request.Context()

	keys, err := h.store.Keys(ctx)
	if err != nil {
		h.fail(c, fmt.Errorf("list cache keys: %w", err))
		return
	}

	h.logger.Debug("Cache stats", zap.Int("size", len(keys)))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"size":        len(keys),
			"keys":        keys,
			"ttl_seconds": int(h.lookup.TTL().Seconds()),
		},
		"backend":   h.backend,
		"timestamp": h.timestamp(),
	})
}
