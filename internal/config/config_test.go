package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendHTTP, cfg.CatalogBackend)
	assert.Equal(t, 30*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, cfg.DefaultSourceIDs)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CATALOG_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/firefly")
	t.Setenv("CATALOG_TIMEOUT", "5s")
	t.Setenv("DEFAULT_SOURCE_IDS", "2,4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, BackendPostgres, cfg.CatalogBackend)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, []int{2, 4}, cfg.DefaultSourceIDs)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_BASE_URL=http://catalog.local/api\n"), 0o600))
	t.Setenv("CATALOG_BASE_URL", "")
	os.Unsetenv("CATALOG_BASE_URL")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "http://catalog.local/api", cfg.CatalogBaseURL)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Config{
		HTTPAddr:         "",
		CatalogBackend:   BackendPostgres,
		CatalogTimeout:   -time.Second,
		DefaultSourceIDs: []int{1, -2},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestValidateUnknownBackend(t *testing.T) {
	cfg := Config{HTTPAddr: ":8080", CatalogBackend: "mysql"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_BACKEND")
}
