package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/moseskang00/bookquest/internal/books"
	"github.com/moseskang00/bookquest/internal/cache"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testBackend = "BookQuest-Backend-test"

type searchCall struct {
	query string
	limit int
	key   string
}

type fakeBooks struct {
	mu    sync.Mutex
	calls []searchCall
	vols  *books.Volumes
	err   error
}

func (f *fakeBooks) Search(_ context.Context, query string, limit int, apiKey string) (*books.Volumes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, searchCall{query: query, limit: limit, key: apiKey})
	if f.err != nil {
		return nil, f.err
	}
	if f.vols != nil {
		return f.vols, nil
	}
	return &books.Volumes{
		Books: []books.Book{{
			ID:         "vol-1",
			Title:      "Result for " + query,
			Authors:    []string{books.UnknownAuthor},
			Categories: []string{},
			ImageLinks: map[string]string{},
		}},
		TotalItems: 1,
	}, nil
}

func (f *fakeBooks) Calls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.calls...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	handler *Handler
	router  *gin.Engine
	books   *fakeBooks
	store   *cache.MemoryStore
	clock   *fakeClock
}

func newFixture(t *testing.T, apiKey string) *fixture {
	t.Helper()

	clock := newFakeClock()
	store := cache.NewMemoryStore(clock.Now)
	fb := &fakeBooks{}
	h := New(Options{
		Books:   fb,
		Store:   store,
		TTL:     time.Hour,
		APIKey:  apiKey,
		Backend: testBackend,
		Now:     clock.Now,
	})

	r := gin.New()
	r.GET("/api/health", h.HealthCheck)
	r.GET("/api/search", h.Search)
	r.GET("/api/categories", h.Categories)
	r.POST("/api/cache/clear", h.ClearCache)
	r.GET("/api/cache/stats", h.CacheStats)
	r.NoRoute(h.NotFound)

	return &fixture{handler: h, router: r, books: fb, store: store, clock: clock}
}

type envelope struct {
	Success   bool            `json:"success"`
	Error     string          `json:"error"`
	Backend   string          `json:"backend"`
	Timestamp string          `json:"timestamp"`
	Query     string          `json:"query"`
	Cached    bool            `json:"cached"`
	Message   string          `json:"message"`
	Status    string          `json:"status"`
	CacheSize int             `json:"cache_size"`
	Data      json.RawMessage `json:"data"`
}

func (f *fixture) do(t *testing.T, method, target string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

func decodeData(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(strings.NewReader(string(raw))).Decode(v))
}
