package config

import (
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "APP_ENV", "DB_DRIVER", "DATABASE_URL", "SEED_PATH", "OSRM_BASE_URL", "OSRM_TIMEOUT",
	"ROUTE_CACHE", "ROUTE_CACHE_SIZE", "ROUTE_CACHE_TTL", "REDIS_ADDR", "MAX_SNAPSHOT_HUBS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "production", c.Env)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "file:data/routes.db", c.DatabaseURL)
	assert.Equal(t, "http://router.project-osrm.org/route/v1/driving", c.OSRMBaseURL)
	assert.Equal(t, 10*time.Second, c.OSRMTimeout)
	assert.Equal(t, CacheMemory, c.RouteCache)
	assert.Equal(t, 1024, c.RouteCacheSize)
	assert.Equal(t, time.Hour, c.RouteCacheTTL)
	assert.Equal(t, 10000, c.MaxSnapshotHubs)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "PGX")
	t.Setenv("ROUTE_CACHE", "redis")
	t.Setenv("OSRM_TIMEOUT", "2s")
	t.Setenv("MAX_SNAPSHOT_HUBS", " 50 ")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pgx", c.DBDriver)
	assert.Equal(t, CacheRedis, c.RouteCache)
	assert.Equal(t, 2*time.Second, c.OSRMTimeout)
	assert.Equal(t, 50, c.MaxSnapshotHubs)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"DB_DRIVER":         "mysql",
		"ROUTE_CACHE":       "disk",
		"OSRM_TIMEOUT":      "soon",
		"ROUTE_CACHE_TTL":   "-1m",
		"ROUTE_CACHE_SIZE":  "0",
		"MAX_SNAPSHOT_HUBS": "many",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("HUB_ROUTING_TEST_KEY", "  ")
	assert.Equal(t, "fallback", Get("HUB_ROUTING_TEST_KEY", "fallback"))
	t.Setenv("HUB_ROUTING_TEST_KEY", "value")
	assert.Equal(t, "value", Get("HUB_ROUTING_TEST_KEY", "fallback"))
}

func TestConfigDoesNotImportAdapters(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "config.go", nil, parser.ImportsOnly)
	require.NoError(t, err)
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		require.NoError(t, err)
		assert.False(t, strings.Contains(path, "/internal/adapters/"), path)
	}
}
