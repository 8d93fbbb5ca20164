package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultResultsFile, cfg.ResultsFile)
	assert.Equal(t, DefaultHistoryDB, cfg.HistoryDB)
	assert.Equal(t, DefaultTimeoutMs, cfg.Timeout)
	assert.False(t, cfg.GetBail())
	assert.False(t, cfg.GetNoColor())
}

func TestFindAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"defaultEnvironment": "staging",
		"resultsFile": "out/results.json",
		"timeout": 45000,
		"bail": true
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".stepline.config.json"), []byte(content), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.DefaultEnvironment)
	assert.Equal(t, "out/results.json", cfg.ResultsFile)
	assert.Equal(t, 45000, cfg.Timeout)
	assert.True(t, cfg.GetBail())
	// Fields absent from the file keep their defaults.
	assert.Equal(t, DefaultHistoryDB, cfg.HistoryDB)
}

func TestFindAndLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		DefaultEnvironment: "prod",
		Timeout:            10000,
		NoColor:            BoolPtr(true),
		Reporters:          []string{"json", "html"},
	}

	merged := base.Merge(override)
	assert.Equal(t, "prod", merged.DefaultEnvironment)
	assert.Equal(t, 10000, merged.Timeout)
	assert.True(t, merged.GetNoColor())
	assert.Equal(t, []string{"json", "html"}, merged.Reporters)
	// Untouched fields survive the merge.
	assert.Equal(t, DefaultResultsFile, merged.ResultsFile)

	assert.Equal(t, base, base.Merge(nil))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STEPLINE_ENV", "qa")
	t.Setenv("STEPLINE_RESULTS_FILE", "qa-results.json")
	t.Setenv("STEPLINE_BAIL", "1")
	t.Setenv("STEPLINE_TIMEOUT", "5000")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "qa", cfg.DefaultEnvironment)
	assert.Equal(t, "qa-results.json", cfg.ResultsFile)
	assert.True(t, cfg.GetBail())
	assert.Equal(t, 5000, cfg.Timeout)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stepline.config.json")
	cfg := DefaultConfig()
	cfg.DefaultEnvironment = "dev"
	cfg.Verbose = BoolPtr(true)

	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", loaded.DefaultEnvironment)
	assert.True(t, loaded.GetVerbose())
}
