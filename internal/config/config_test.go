package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	s := &service{filePath: path}

	cfg := Default()
	cfg.Placeholder = "Search repos..."
	cfg.UISettings.MaxVisibleRows = 12
	cfg.Behavior.SelectWithTab = true

	require.NoError(t, s.Save(cfg))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Search repos...", got.Placeholder)
	assert.Equal(t, 12, got.UISettings.MaxVisibleRows)
	assert.True(t, got.Behavior.SelectWithTab)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := &service{filePath: filepath.Join(t.TempDir(), "nope.toml")}

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = [not toml"), 0644))

	s := &service{filePath: path}
	_, err := s.Load()
	assert.Error(t, err)
}

func TestLoadFixesNonPositiveRowCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nmax_visible_rows = 0\n"), 0644))

	s := &service{filePath: path}
	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Default().UISettings.MaxVisibleRows, cfg.UISettings.MaxVisibleRows)
}
