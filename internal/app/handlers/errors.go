package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moseskang00/bookquest/internal/books"
)

var (
	// ErrConfiguration means the operator must fix the environment.
	ErrConfiguration = errors.New("google books api key not configured")

	// ErrValidation means the client must fix the request.
	ErrValidation = errors.New("invalid search parameters")

	// ErrEmptyQuery is the validation failure for a blank q.
	ErrEmptyQuery = fmt.Errorf("%w: search query is required", ErrValidation)
)

const (
	msgNotConfigured    = "Google Books API key not configured"
	msgQueryRequired    = "Search query is required"
	msgInvalidParams    = "Invalid search parameters"
	msgUpstreamFailed   = "Failed to fetch books from Google Books API"
	msgInternal         = "Internal server error"
	msgNotFound         = "Endpoint not found"
	msgMethodNotAllowed = "Method not allowed"
)

// classify maps an error onto its HTTP status and client-facing message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrConfiguration):
		return http.StatusInternalServerError, msgNotConfigured
	case errors.Is(err, ErrEmptyQuery):
		return http.StatusBadRequest, msgQueryRequired
	case errors.Is(err, ErrValidation), errors.Is(err, books.ErrInvalidParams):
		return http.StatusBadRequest, msgInvalidParams
	case books.IsTransport(err):
		return http.StatusServiceUnavailable, msgUpstreamFailed
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// fail writes the uniform error envelope and stops the chain.
func (h *Handler) fail(c *gin.Context, err error) {
	status, message := classify(err)

	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
	switch {
	case books.IsTransport(err):
		h.logger.Error("Google Books API error", fields...)
	case status >= http.StatusInternalServerError:
		h.logger.Error("Request failed", fields...)
	default:
		h.logger.Info("Rejected request", fields...)
	}

	h.abort(c, status, message)
}

func (h *Handler) abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
		"backend": h.backend,
	})
}

// NotFound answers unmatched routes.
func (h *Handler) NotFound(c *gin.Context) {
	h.abort(c, http.StatusNotFound, msgNotFound)
}

// MethodNotAllowed answers known paths requested with the wrong method.
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	h.abort(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

// Recover turns a panic into the internal error envelope.
func (h *Handler) Recover(c *gin.Context, recovered any) {
	h.logger.Error("Recovered from panic",
		zap.String("path", c.Request.URL.Path),
		zap.Any("panic", recovered))
	h.abort(c, http.StatusInternalServerError, msgInternal)
}
