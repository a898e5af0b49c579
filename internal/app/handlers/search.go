package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/moseskang00/bookquest/common/constants"
	"github.com/moseskang00/bookquest/internal/books"
	"github.com/moseskang00/bookquest/internal/cache"
	"github.com/moseskang00/bookquest/internal/literacy"
)

type searchParams struct {
	Query      string `form:"q"`
	MaxResults *int   `form:"maxResults" binding:"omitempty,gte=1"`
}

// searchData is the cached part of a search response.
type searchData struct {
	Books         []books.Book    `json:"books"`
	TotalItems    int             `json:"totalItems"`
	HealthContent []literacy.Hint `json:"healthContent"`
}

type cachedSearch struct {
	Data  json.RawMessage `json:"data"`
	Query string          `json:"query"`
}

type searchResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Backend   string          `json:"backend"`
	Timestamp string          `json:"timestamp"`
	Query     string          `json:"query"`
	Cached    bool            `json:"cached"`
}

// Search handles GET /api/search.
//
// The credential is checked before anything else. The cache key uses q
// exactly as received, so requests differing only in maxResults share an
// entry until it goes stale.
func (h *Handler) Search(c *gin.Context) {
	if strings.TrimSpace(h.apiKey) == "" {
		h.fail(c, ErrConfiguration)
		return
	}

	rawQuery := c.Query("q")
	key := cache.Key(constants.SearchCacheName, rawQuery)

	var params searchParams
	bindErr := c.ShouldBindQuery(&params)

	// The upstream call is not tied to the inbound request; only the
	// client timeout bounds it.
	ctx := context.WithoutCancel(c.Request.Context())

	payload, cached, err := h.lookup.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		return h.loadSearch(ctx, params, bindErr)
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	var entry cachedSearch
	if err := json.Unmarshal(payload, &entry); err != nil {
		h.fail(c, fmt.Errorf("decode cached search: %w", err))
		return
	}

	h.logger.Info("Search served",
		zap.String("query", entry.Query),
		zap.Bool("cached", cached))

	c.JSON(http.StatusOK, searchResponse{
		Success:   true,
		Data:      entry.Data,
		Backend:   h.backend,
		Timestamp: h.timestamp(),
		Query:     entry.Query,
		Cached:    cached,
	})
}

// loadSearch validates the request and performs the upstream round-trip.
// It only runs on a cache miss.
func (h *Handler) loadSearch(ctx context.Context, params searchParams, bindErr error) ([]byte, error) {
	if bindErr != nil {
		var verrs validator.ValidationErrors
		if errors.As(bindErr, &verrs) {
			return nil, fmt.Errorf("%w: %s failed %q", ErrValidation, verrs[0].Field(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, bindErr)
	}

	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	limit := constants.DefaultSearchResults
	if params.MaxResults != nil {
		limit = min(*params.MaxResults, constants.MaxSearchResults)
	}

	h.logger.Info("Cache miss, calling Google Books",
		zap.String("query", query),
		zap.Int("maxResults", limit))

	vols, err := h.books.Search(ctx, query, limit, h.apiKey)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(searchData{
		Books:         vols.Books,
		TotalItems:    vols.TotalItems,
		HealthContent: literacy.Match(query),
	})
	if err != nil {
		return nil, fmt.Errorf("encode search data: %w", err)
	}

	return json.Marshal(cachedSearch{Data: data, Query: query})
}
