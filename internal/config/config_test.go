package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 7, cfg.Grid.Rows)
	assert.Equal(t, 7, cfg.Grid.Cols)
	assert.Equal(t, []int{0, 1}, cfg.Grid.FillValues)
	assert.Equal(t, []float64{0.5, 0.5}, cfg.Grid.FillProbabilities)
	assert.Equal(t, 30, cfg.Simulation.MaxGenerations)
	assert.Equal(t, 2, cfg.Simulation.TargetRegions)
	assert.Equal(t, "regions_found.txt", cfg.Storage.Path)
	assert.False(t, cfg.Storage.ErrorOnMissing)
	assert.Empty(t, cfg.RunLog.Path)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeFile(t, `
grid:
  rows: 12
  fill_values: [0, 1]
  fill_probabilities: [0.75, 0.25]
simulation:
  target_regions: 4
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Grid.Rows)
	assert.Equal(t, 7, cfg.Grid.Cols, "unset keys keep defaults")
	assert.Equal(t, []float64{0.75, 0.25}, cfg.Grid.FillProbabilities)
	assert.Equal(t, 4, cfg.Simulation.TargetRegions)
	assert.Equal(t, 30, cfg.Simulation.MaxGenerations)
	assert.Equal(t, "json", cfg.Log.Format)

	lc := cfg.Life()
	assert.Equal(t, 12, lc.Rows)
	assert.Equal(t, 30, lc.MaxGenerations)

	rc := cfg.Runner(5)
	assert.Equal(t, int64(5), rc.Seed)
	assert.Equal(t, 4, rc.TargetRegions)
	assert.Equal(t, 1000, rc.MaxAttempts)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero rows":         "grid:\n  rows: 0\n",
		"length mismatch":   "grid:\n  fill_values: [0, 1]\n  fill_probabilities: [1]\n",
		"non-binary values": "grid:\n  fill_values: [0, 3]\n",
		"no attempts":       "simulation:\n  max_attempts: 0\n",
		"no storage path":   "storage:\n  path: \"\"\n",
		"bad level":         "log:\n  level: chatty\n",
		"bad format":        "log:\n  format: xml\n",
		"not yaml":          "grid: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grid.Rows = 9
	cfg.Simulation.Seed = 1234

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
