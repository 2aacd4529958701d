package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `
show_line_numbers: true
detect:
  extensions: [".xaml", ".xamlx"]
  sniff: false
`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.ShowLineNumbers)
	assert.Equal(t, []string{".xaml", ".xamlx"}, cfg.Detect.Extensions)
	assert.False(t, cfg.Detect.Sniff)
	require.NotNil(t, cfg.Watch)
	assert.Equal(t, DefaultDebounceMS, cfg.Watch.DebounceMS)
}

func TestLoadFromDir_AltName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileNameAlt), "watch:\n  debounce_ms: 40\n")

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Watch.DebounceMS)
	assert.Equal(t, DefaultDetectConfig(), cfg.Detect)
}

func TestLoadFromDir_Missing(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromDir_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), "show_line_numbers: [unterminated")

	_, err := LoadFromDir(dir)
	assert.Error(t, err)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "")
	nested := filepath.Join(root, "Views", "Controls")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))
}

func TestDetectConfig_Options(t *testing.T) {
	var nilCfg *DetectConfig
	assert.True(t, nilCfg.Options().Sniff)

	c := &DetectConfig{Extensions: []string{".x"}, Sniff: false}
	opts := c.Options()
	assert.Equal(t, []string{".x"}, opts.Extensions)
	assert.False(t, opts.Sniff)
}
