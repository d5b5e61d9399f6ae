package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-twin-engine/internal/config"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func resetGlobalFlags(t *testing.T) {
	t.Cleanup(func() {
		configPath, taxonomyPath, rolesPath, verbose = "", "", "", false
	})
}

func TestLoadSettings_Defaults(t *testing.T) {
	resetGlobalFlags(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_MODE", "")

	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTopK, cfg.TopK)
	assert.Equal(t, config.DefaultHorizonWeeks, cfg.HorizonWeeks)
	assert.Equal(t, config.DefaultLogMode, cfg.LogMode)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadSettings_FileEnvAndFlags(t *testing.T) {
	resetGlobalFlags(t)
	taxonomyFile := writeTempFile(t, "taxonomy.yaml", "version: t1\nskills:\n  - canonical_name: Go\n")
	configPath = writeTempFile(t, "config.yaml", "top_k: 3\nhorizon_weeks: 10\n")
	taxonomyPath = taxonomyFile
	verbose = true
	t.Setenv("DATABASE_URL", "postgres://localhost/skills")

	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 10, cfg.HorizonWeeks)
	assert.Equal(t, taxonomyFile, cfg.TaxonomyPath)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "postgres://localhost/skills", cfg.DatabaseURL)

	tax, catalog, err := loadTables(cfg)
	require.NoError(t, err)
	assert.Equal(t, "t1", tax.Version())
	assert.Positive(t, catalog.Len())
}

func TestLoadSettings_InvalidConfig(t *testing.T) {
	resetGlobalFlags(t)
	configPath = writeTempFile(t, "config.json", `{"top_k": -2}`)

	_, err := loadSettings()
	assert.ErrorContains(t, err, "top_k")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	require.NoError(t, writeJSON(path, map[string]int{"a": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(data))
}

func TestRuntimeClose_ReverseOrder(t *testing.T) {
	var order []int
	rt := &runtime{closers: []func(){
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}}
	rt.Close()
	assert.Equal(t, []int{2, 1}, order)
}
