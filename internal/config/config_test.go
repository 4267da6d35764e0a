package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AIMREPORT_STORE", "")
	t.Setenv("AIMREPORT_CONCURRENCY", "")
	t.Setenv("AIMREPORT_LOG_LEVEL", "")

	cfg := Load()
	assert.False(t, cfg.StoreEnabled)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "facilities", cfg.SurrealDBNamespace)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AIMREPORT_STORE", "true")
	t.Setenv("AIMREPORT_CONCURRENCY", "8")
	t.Setenv("AIMREPORT_LOG_LEVEL", "debug")
	t.Setenv("SURREALDB_DATABASE", "aim_test")

	cfg := Load()
	assert.True(t, cfg.StoreEnabled)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "aim_test", cfg.SurrealDBDatabase)
}

func TestLoadInvalidConcurrency(t *testing.T) {
	t.Setenv("AIMREPORT_CONCURRENCY", "-2")
	assert.Equal(t, 4, Load().Concurrency)
}

func TestLoadRules(t *testing.T) {
	t.Run("empty path gives defaults", func(t *testing.T) {
		rules, err := LoadRules("")
		require.NoError(t, err)
		assert.True(t, rules.TwoDigitFloors)
		assert.Len(t, rules.Buildings, 3)
	})

	t.Run("file overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := `
two_digit_floors: false
buildings:
  - code: "0101"
    name: ANX
    full_name: Research Annex
    aliases: ["R.A."]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		rules, err := LoadRules(path)
		require.NoError(t, err)
		assert.False(t, rules.TwoDigitFloors)
		require.Len(t, rules.Buildings, 1)
		assert.Equal(t, "ANX", rules.Buildings[0].Name)
		assert.Equal(t, []string{"R.A."}, rules.Buildings[0].Aliases)
	})

	t.Run("building without code", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("buildings:\n  - name: X\n"), 0644))
		_, err := LoadRules(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("pipeline finished", "records", 3)

	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "records=3")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(file.String())), &entry))
	assert.Equal(t, "pipeline finished", entry["msg"])
	assert.EqualValues(t, 3, entry["records"])
}

func TestSetupLogger_FileFallback(t *testing.T) {
	logger, cleanup := SetupLogger(filepath.Join(t.TempDir(), "missing-dir", "x.log"), slog.LevelInfo)
	require.NotNil(t, logger)
	assert.NoError(t, cleanup())
}
