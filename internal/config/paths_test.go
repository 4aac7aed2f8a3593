package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/config"
)

func TestDefaultConfigFile(t *testing.T) {
	path, err := config.DefaultConfigFile()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(".opctl", "config.yaml"), path[len(path)-len(filepath.Join(".opctl", "config.yaml")):])
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.yaml")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0o644))

	ok, err := config.FileExists(present)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = config.FileExists(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = config.FileExists(dir)
	require.NoError(t, err)
	assert.False(t, ok, "a directory is not a regular file")
}
