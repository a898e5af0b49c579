package handlers

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/moseskang00/bookquest/common/constants"
	"github.com/moseskang00/bookquest/internal/books"
	"github.com/moseskang00/bookquest/internal/cache"
)

// BookSearcher is the upstream catalog used on cache misses.
type BookSearcher interface {
	Search(ctx context.Context, query string, limit int, apiKey string) (*books.Volumes, error)
}

// Options carries the Handler dependencies.
type Options struct {
	Logger *zap.Logger
	Books  BookSearcher
	Store  cache.Store
	TTL    time.Duration

	// APIKey is the Google Books credential, checked on every search.
	APIKey string

	// Backend overrides the backend identifier; empty means BackendIdentifier().
	Backend string

	// Now overrides the response timestamp clock.
	Now func() time.Time
}

// Handler serves the /api endpoints. It owns the search Lookup built over
// the shared Store.
type Handler struct {
	logger  *zap.Logger
	books   BookSearcher
	store   cache.Store
	lookup  *cache.Lookup
	apiKey  string
	backend string
	now     func() time.Time
}

func New(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Store == nil {
		opts.Store = cache.NewMemoryStore(nil)
	}
	if opts.TTL <= 0 {
		opts.TTL = constants.CacheTTLSeconds * time.Second
	}
	if opts.Backend == "" {
		opts.Backend = BackendIdentifier()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{
		logger:  opts.Logger,
		books:   opts.Books,
		store:   opts.Store,
		lookup:  cache.NewLookup(opts.Store, opts.TTL, opts.Logger),
		apiKey:  opts.APIKey,
		backend: opts.Backend,
		now:     opts.Now,
	}
}

// Backend returns the identifier stamped on every response.
func (h *Handler) Backend() string {
	return h.backend
}

// BackendIdentifier names this process instance for load-balancer demos.
func BackendIdentifier() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return constants.BackendPrefix + host
}

func (h *Handler) timestamp() string {
	return h.now().Format(time.RFC3339)
}
