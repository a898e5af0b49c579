// Package app assembles the HTTP surface.
package app

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/moseskang00/bookquest/internal/app/handlers"
)

type RouterOptions struct {
	Logger *zap.Logger

	// StaticDir is the front-end asset root. Empty disables static serving.
	StaticDir string
}

// NewRouter wires the /api endpoints, /metrics and the static front-end.
func NewRouter(h *handlers.Handler, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(requestLogger(opts.Logger))
	router.Use(gin.CustomRecovery(h.Recover))
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/search", h.Search)
		api.GET("/categories", h.Categories)
		api.POST("/cache/clear", h.ClearCache)
		api.GET("/cache/stats", h.CacheStats)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(staticOrNotFound(opts.StaticDir, h))
	router.NoMethod(h.MethodNotAllowed)

	return router
}

// staticOrNotFound serves front-end files for non-API GETs and the JSON 404
// envelope for everything else.
func staticOrNotFound(dir string, h *handlers.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		method := c.Request.Method
		if dir == "" || strings.HasPrefix(p, "/api/") || (method != http.MethodGet && method != http.MethodHead) {
			h.NotFound(c)
			return
		}

		name := path.Clean("/" + p)
		if name == "/" {
			name = "/index.html"
		}
		full := filepath.Join(dir, filepath.FromSlash(name))

		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			h.NotFound(c)
			return
		}
		c.File(full)
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()))
	}
}

// CORS middleware
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
