package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellsim/internal/config"
	"cellsim/internal/runlog"
	"cellsim/pkg/storage"
)

func TestRunCataloguesShapes(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "regions.txt")
	csvPath := filepath.Join(dir, "runs.csv")

	var logs bytes.Buffer
	err := run([]string{"-seed", "3", "-store", store, "-run-log", csvPath}, &logs)
	require.NoError(t, err, logs.String())
	assert.Contains(t, logs.String(), "catalogue summary")

	s := storage.New()
	require.NoError(t, s.LoadFile(store, true))

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := runlog.ReadAll(f)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	regions, shapes := 0, 0
	for _, r := range records {
		regions += r.Regions
		shapes += r.NewShapes
	}
	assert.Equal(t, shapes, s.Size())
	assert.Equal(t, regions, s.Summarize().Observations)
}

func TestRunMergesExistingCatalogue(t *testing.T) {
	store := filepath.Join(t.TempDir(), "regions.txt")
	require.NoError(t, os.WriteFile(store, []byte("7 7 \ncount: 5\n"), 0o644))

	var logs bytes.Buffer
	require.NoError(t, run([]string{"-seed", "11", "-store", store}, &logs), logs.String())

	s := storage.New()
	require.NoError(t, s.LoadFile(store, true))
	assert.Equal(t, 5, s.LookupKey("7 7 \n"), "loaded entries survive the save")
	assert.Greater(t, s.Size(), 1)
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	var logs bytes.Buffer
	require.NoError(t, run([]string{"-seed", "99", "-store", a}, &logs))
	require.NoError(t, run([]string{"-seed", "99", "-store", b}, &logs))

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, string(da), string(db))
}

func TestRunMissingCatalogueReported(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	store := filepath.Join(dir, "regions.txt")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  error_on_missing: true\n"), 0o644))

	var logs bytes.Buffer
	require.NoError(t, run([]string{"-config", cfgPath, "-seed", "1", "-store", store}, &logs))
	assert.Contains(t, logs.String(), "loading shape catalogue")
	_, err := os.Stat(store)
	assert.NoError(t, err, "catalogue is still written")
}

func TestRunKeepsUnreadableCatalogue(t *testing.T) {
	store := filepath.Join(t.TempDir(), "regions.txt")
	body := "1 \ncount: 5\n1 1 \ncount: oops\n1 1 1 \ncount: 9\n"
	require.NoError(t, os.WriteFile(store, []byte(body), 0o644))

	var logs bytes.Buffer
	err := run([]string{"-seed", "4", "-store", store}, &logs)
	assert.ErrorIs(t, err, storage.ErrMalformedCount)

	got, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestRunWriteConfig(t *testing.T) {
	out := filepath.Join(t.TempDir(), "effective.yaml")
	var logs bytes.Buffer
	require.NoError(t, run([]string{"-write-config", out, "-store", "custom.txt"}, &logs))

	cfg, err := config.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "custom.txt", cfg.Storage.Path)
}

func TestRunBadFlag(t *testing.T) {
	var logs bytes.Buffer
	err := run([]string{"-no-such-flag"}, &logs)
	assert.Error(t, err)
	assert.True(t, strings.Contains(logs.String(), "no-such-flag"))
}
