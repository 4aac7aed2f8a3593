package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/testutil"
)

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "nested/a.toml", "x = 1\n")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(data))
}

func TestAssertGolden_MatchesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golden.txt")
	require.NoError(t, os.WriteFile(path, []byte("expected\n"), 0o644))
	testutil.AssertGolden(t, path, "expected\n")
}

func TestSourceFragment(t *testing.T) {
	got := testutil.SourceFragment("in", "socket_source", []string{"log"})
	assert.Contains(t, got, `[sources.in]`)
	assert.Contains(t, got, `type = "socket_source"`)
	assert.Contains(t, got, `output_types = ["log"]`)
}

func TestTransformFragment(t *testing.T) {
	got := testutil.TransformFragment("t", "remap", []string{"in"})
	assert.Contains(t, got, `[transforms.t]`)
	assert.Contains(t, got, `inputs = ["in"]`)
}

func TestSinkFragment(t *testing.T) {
	got := testutil.SinkFragment("out", "console", []string{"t"})
	assert.Contains(t, got, `[sinks.out]`)
	assert.Contains(t, got, `inputs = ["t"]`)
}
