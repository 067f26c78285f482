package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
name = "app"
is_library = false
version = "0.1.0"
features = ["fast"]

[dependencies.mathlib]
version = "1.0.0"
features = ["slow"]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "app", cfg.Name)
	require.False(t, cfg.IsLibrary)
	require.Equal(t, "out", cfg.BuildPath)
	require.True(t, cfg.EnabledFeatures("fast"))
	require.False(t, cfg.EnabledFeatures("slow"))
	require.Equal(t, "1.0.0", cfg.Dependencies["mathlib"].Version)
}

func TestLoadConfigRespectsExplicitBuildPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`name = "app"
build_path = "dist"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "dist", cfg.BuildPath)
}
