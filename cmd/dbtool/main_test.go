package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	depotID   = "7d1f6a2e-3c44-4b8e-9f0a-1b2c3d4e5f01"
	transitID = "7d1f6a2e-3c44-4b8e-9f0a-1b2c3d4e5f03"
	edgeID    = "b3a0c9d1-5e6f-4a70-8b91-0c1d2e3f4a01"
)

const seedDoc = `{
  "hubs": [
    {"id": "` + depotID + `", "address": "Port Road Warehouse", "type": "WAREHOUSE", "lon": 9.7043, "lat": 4.0511},
    {"id": "` + transitID + `", "address": "Akwa Transit Point", "type": "TRANSIT_POINT", "lon": 9.6982, "lat": 4.0483}
  ],
  "edges": [
    {"id": "` + edgeID + `", "from": "` + depotID + `", "to": "` + transitID + `", "weight": 0.8}
  ]
}`

func setupEnv(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"OSRM_TIMEOUT", "ROUTE_CACHE", "ROUTE_CACHE_SIZE", "ROUTE_CACHE_TTL", "MAX_SNAPSHOT_HUBS", "SEED_PATH"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(dir, "routes.db"))

	seed := filepath.Join(dir, "hubs.json")
	require.NoError(t, os.WriteFile(seed, []byte(seedDoc), 0o600))
	return seed
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitSeedAndListHubs(t *testing.T) {
	seed := setupEnv(t)

	_, err := execute(t, "init")
	require.NoError(t, err)

	_, err = execute(t, "seed", seed)
	require.NoError(t, err)

	// seeding twice is an upsert
	_, err = execute(t, "seed", seed)
	require.NoError(t, err)

	out, err := execute(t, "hubs")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ADDRESS")
	assert.Contains(t, out, depotID)
	assert.Contains(t, out, "WAREHOUSE")
	assert.Contains(t, out, "Akwa Transit Point")
}

func TestSeedUsesSeedPath(t *testing.T) {
	seed := setupEnv(t)
	t.Setenv("SEED_PATH", seed)

	_, err := execute(t, "seed")
	require.NoError(t, err)

	out, err := execute(t, "hubs")
	require.NoError(t, err)
	assert.Contains(t, out, transitID)
}

func TestListEdges(t *testing.T) {
	seed := setupEnv(t)
	_, err := execute(t, "seed", seed)
	require.NoError(t, err)

	out, err := execute(t, "edges", depotID)
	require.NoError(t, err)
	assert.Contains(t, out, edgeID)
	assert.Contains(t, out, transitID)
	assert.Contains(t, out, "0.8")

	out, err = execute(t, "edges", transitID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
}

func TestListEdgesRejectsBadHub(t *testing.T) {
	seed := setupEnv(t)
	_, err := execute(t, "seed", seed)
	require.NoError(t, err)

	_, err = execute(t, "edges", "not-a-uuid")
	assert.Error(t, err)

	_, err = execute(t, "edges", "00000000-0000-4000-8000-000000000000")
	assert.Error(t, err)
}

func TestSeedMissingFile(t *testing.T) {
	setupEnv(t)
	_, err := execute(t, "seed", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
