// Package books talks to the Google Books volumes API and projects its
// responses into normalized Book records.
package books

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/moseskang00/bookquest/common/constants"
)

// Config holds the upstream client settings.
type Config struct {
	// BaseURL is the API root, e.g. https://www.googleapis.com/books/v1
	BaseURL string

	// Timeout bounds a single request, including reading the body.
	Timeout time.Duration
}

// DefaultConfig returns the production upstream settings.
func DefaultConfig() Config {
	return Config{
		BaseURL: constants.GoogleBooksAPIURL,
		Timeout: constants.UpstreamTimeoutSecs * time.Second,
	}
}

// Client issues volume searches. It never retries: a failed attempt is
// returned to the caller as a *TransportError.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.GoogleBooksAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.UpstreamTimeoutSecs * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// Search fetches one page of volumes matching query. limit must already be
// clamped by the caller to 1..MaxSearchResults.
func (c *Client) Search(ctx context.Context, query string, limit int, apiKey string) (*Volumes, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidParams)
	}
	if limit < 1 || limit > constants.MaxSearchResults {
		return nil, fmt.Errorf("%w: limit %d out of range", ErrInvalidParams, limit)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":          query,
			"maxResults": strconv.Itoa(limit),
			"key":        apiKey,
		}).
		Get(constants.GoogleBooksVolumes)
	upstreamDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		upstreamRequests.WithLabelValues("error").Inc()
		c.logger.Error("Google Books request failed", zap.String("query", query), zap.Error(err))
		return nil, &TransportError{Message: "request failed", Err: err}
	}

	upstreamRequests.WithLabelValues(strconv.Itoa(resp.StatusCode())).Inc()
	if !resp.IsSuccess() {
		c.logger.Error("Google Books returned non-success status",
			zap.String("query", query),
			zap.Int("statusCode", resp.StatusCode()))
		return nil, &TransportError{StatusCode: resp.StatusCode(), Message: "unexpected status"}
	}

	var payload volumesResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		c.logger.Error("Error unmarshalling Google Books response", zap.Error(err))
		return nil, &TransportError{StatusCode: resp.StatusCode(), Message: "invalid response body", Err: err}
	}

	volumes := payload.toVolumes()
	c.logger.Debug("Google Books search completed",
		zap.String("query", query),
		zap.Int("totalItems", volumes.TotalItems),
		zap.Int("numReturned", len(volumes.Books)),
		zap.Duration("duration", time.Since(start)))

	return volumes, nil
}
