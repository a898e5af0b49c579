package constants

const (
	GoogleBooksAPIURL    = "https://www.googleapis.com/books/v1"
	GoogleBooksVolumes   = "/volumes"
	UpstreamTimeoutSecs  = 10
	DefaultSearchResults = 20
	MaxSearchResults     = 40
)

const (
	CacheTTLSeconds = 3600
	CachePrefix     = "bookquest"

	// SearchCacheName is the handler identity used in search cache keys.
	SearchCacheName = "search_books"
)

// BackendPrefix is prepended to the host name to form the backend identifier.
const BackendPrefix = "BookQuest-Backend-"
