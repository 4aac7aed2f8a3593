package loader_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/loader"
	"github.com/opmodel/topology/internal/registry"
	"github.com/opmodel/topology/internal/secret"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FoldsMultipleFragmentsInPathOrder(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "10-sources.toml", `
[sources.in]
type = "file_descriptor"
fd = 10
`)
	p2 := writeFile(t, dir, "20-sinks.toml", `
[sinks.out]
type = "socket_sink"
inputs = ["in"]
address = "0.0.0.0"
port = 9000
`)

	l := loader.New(registry.New())
	b, errs := l.Load(context.Background(), []string{p1, p2})
	require.Empty(t, errs)
	assert.True(t, b.Sources.Has(identity.NewComponentKey("in")))
	assert.True(t, b.Sinks.Has(identity.NewComponentKey("out")))
}

func TestLoad_FirstFragmentWinsOnCollision(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "a.toml", `
[sources.in]
type = "file_descriptor"
fd = 1
`)
	p2 := writeFile(t, dir, "b.toml", `
[sources.in]
type = "file_descriptor"
fd = 2
`)

	l := loader.New(registry.New())
	b, errs := l.Load(context.Background(), []string{p1, p2})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "duplicate source id found: in")

	kept, _ := b.Sources.Get(identity.NewComponentKey("in"))
	require.NotNil(t, kept)
}

func TestLoad_EnvSubstitutionAppliedBeforeParse(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.toml", `
[sources.in]
type = "file_descriptor"
fd = ${FD_NUMBER}
`)

	l := loader.New(registry.New())
	l.Lookup = func(name string) (string, bool) {
		if name == "FD_NUMBER" {
			return "42", true
		}
		return "", false
	}
	b, errs := l.Load(context.Background(), []string{p})
	require.Empty(t, errs)
	assert.True(t, b.Sources.Has(identity.NewComponentKey("in")))
}

func TestProcessPaths_ExpandsDirectoriesSorted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.toml", "")
	writeFile(t, dir, "a.toml", "")
	writeFile(t, dir, "ignore.txt", "")

	files, err := loader.ProcessPaths([]string{dir})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files[0], "a.toml")
	assert.Contains(t, files[1], "b.toml")
}

func TestMergePaths_DeduplicatesCanonicalPaths(t *testing.T) {
	merged := loader.MergePaths([]string{"/a/b.toml"}, []string{"/a/../a/b.toml", "/c.toml"})
	require.Len(t, merged, 2)
}

type stubBackend struct{ values map[string]string }

func (s stubBackend) Resolve(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("no such key %q", key)
	}
	return v, nil
}

func TestLoad_SecretMarkerResolvedBeforeParse(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.toml", `
[sources.in]
type = "socket_source"
output_types = ["log"]
address = "SECRET[vault.bind_addr]"
port = 8080
protocol = "tcp"
`)

	l := loader.New(registry.New())
	l.Secrets = secret.Backends{
		"vault": stubBackend{values: map[string]string{"bind_addr": "127.0.0.1"}},
	}
	b, errs := l.Load(context.Background(), []string{p})
	require.Empty(t, errs)
	assert.True(t, b.Sources.Has(identity.NewComponentKey("in")))
}

func TestLoad_UnresolvedSecretMarkerIsError(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.toml", `
[sources.in]
type = "socket_source"
output_types = ["log"]
note = "SECRET[vault.missing]"
`)

	l := loader.New(registry.New())
	b, errs := l.Load(context.Background(), []string{p})
	require.NotEmpty(t, errs)
	assert.False(t, b.Sources.Has(identity.NewComponentKey("in")))
}
