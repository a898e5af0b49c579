// Package config resolves service settings from flags, the environment and
// an optional .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/moseskang00/bookquest/common/constants"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Viper keys. AutomaticEnv maps each to its upper-cased environment name.
const (
	KeyAPIKey        = "google_books_api_key"
	KeyPort          = "port"
	KeyStaticDir     = "static_dir"
	KeyEnv           = "env"
	KeyLogLevel      = "log_level"
	KeyBooksAPIURL   = "books_api_url"
	KeyCacheBackend  = "cache_backend"
	KeyCachePrefix   = "cache_prefix"
	KeyRedisHost     = "redis_host"
	KeyRedisPort     = "redis_port"
	KeyRedisPassword = "redis_password"
	KeyRedisDB       = "redis_db"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// APIKey is the Google Books credential. Blank is allowed at startup;
	// searches report it as a configuration error.
	APIKey       string
	Port         int
	StaticDir    string
	Env          string
	LogLevel     string
	BooksAPIURL  string
	CacheBackend string
	CachePrefix  string
	Redis        RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	switch c.CacheBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.CacheBackend)
	}
	return nil
}

// LoadDotEnv loads the first .env files that exist and returns the ones
// used. Variables already set in the environment win.
func LoadDotEnv(paths ...string) []string {
	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			loaded = append(loaded, p)
		}
	}
	return loaded
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyStaticDir, "app")
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyBooksAPIURL, constants.GoogleBooksAPIURL)
	v.SetDefault(KeyCacheBackend, BackendMemory)
	v.SetDefault(KeyCachePrefix, constants.CachePrefix)
	v.SetDefault(KeyRedisHost, "localhost")
	v.SetDefault(KeyRedisPort, "6379")
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisDB, 0)
	v.AutomaticEnv()
	return v
}

// RegisterFlags adds serve flags and binds them to their keys.
func RegisterFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.Int("port", 8080, "listen port")
	fs.String("static-dir", "app", "front-end asset directory (empty disables)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("books-api-url", constants.GoogleBooksAPIURL, "Google Books API base URL")
	fs.String("cache-backend", BackendMemory, "response cache backend: memory or redis")
	fs.String("redis-host", "localhost", "redis host for the redis cache backend")
	fs.String("redis-port", "6379", "redis port for the redis cache backend")

	bindings := map[string]string{
		KeyPort:         "port",
		KeyStaticDir:    "static-dir",
		KeyLogLevel:     "log-level",
		KeyBooksAPIURL:  "books-api-url",
		KeyCacheBackend: "cache-backend",
		KeyRedisHost:    "redis-host",
		KeyRedisPort:    "redis-port",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads and validates the resolved settings.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		APIKey:       strings.TrimSpace(v.GetString(KeyAPIKey)),
		Port:         v.GetInt(KeyPort),
		StaticDir:    v.GetString(KeyStaticDir),
		Env:          strings.ToLower(v.GetString(KeyEnv)),
		LogLevel:     v.GetString(KeyLogLevel),
		BooksAPIURL:  v.GetString(KeyBooksAPIURL),
		CacheBackend: strings.ToLower(v.GetString(KeyCacheBackend)),
		CachePrefix:  v.GetString(KeyCachePrefix),
		Redis: RedisConfig{
			Host:     v.GetString(KeyRedisHost),
			Port:     v.GetString(KeyRedisPort),
			Password: v.GetString(KeyRedisPassword),
			DB:       v.GetInt(KeyRedisDB),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
