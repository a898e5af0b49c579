package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moseskang00/bookquest/common/constants"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "app", cfg.StaticDir)
	assert.Equal(t, BackendMemory, cfg.CacheBackend)
	assert.Equal(t, constants.GoogleBooksAPIURL, cfg.BooksAPIURL)
	assert.Equal(t, constants.CachePrefix, cfg.CachePrefix)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GOOGLE_BOOKS_API_KEY", "  abc123  ")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "Production")
	t.Setenv("CACHE_BACKEND", "REDIS")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, BackendRedis, cfg.CacheBackend)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_FlagsBeatEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")

	v := New()
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	require.NoError(t, RegisterFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--port", "7070", "--static-dir", ""}))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "", cfg.StaticDir)
}

func TestLoad_UnsetFlagFallsBackToEnv(t *testing.T) {
	t.Setenv("PORT", "9090")

	v := New()
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	require.NoError(t, RegisterFlags(v, fs))
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
}

func TestValidate(t *testing.T) {
	base := Config{Port: 8080, CacheBackend: BackendMemory}
	require.NoError(t, base.Validate())

	badPort := base
	badPort.Port = 0
	assert.ErrorIs(t, badPort.Validate(), ErrInvalidConfig)

	badBackend := base
	badBackend.CacheBackend = "memcached"
	assert.ErrorIs(t, badBackend.Validate(), ErrInvalidConfig)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOOKQUEST_DOTENV_PROBE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BOOKQUEST_DOTENV_PROBE") })

	loaded := LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	assert.Equal(t, []string{path}, loaded)
	assert.Equal(t, "from-file", os.Getenv("BOOKQUEST_DOTENV_PROBE"))
}
