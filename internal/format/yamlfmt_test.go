package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/format"
)

func TestCanonicalizeYAML_OrdersTopLevelSections(t *testing.T) {
	input := `
sinks:
  out: {}
sources:
  in: {}
schema:
  host_key: h
`
	got, err := format.CanonicalizeYAML([]byte(input), 2)
	require.NoError(t, err)

	schemaIdx := strings.Index(string(got), "schema:")
	sourcesIdx := strings.Index(string(got), "sources:")
	sinksIdx := strings.Index(string(got), "sinks:")
	require.NotEqual(t, -1, schemaIdx)
	require.NotEqual(t, -1, sourcesIdx)
	require.NotEqual(t, -1, sinksIdx)
	assert.Less(t, schemaIdx, sourcesIdx)
	assert.Less(t, sourcesIdx, sinksIdx)
}

func TestCanonicalizeYAML_SortsComponentNamesWithinSection(t *testing.T) {
	input := `
sources:
  zebra: {}
  alpha: {}
`
	got, err := format.CanonicalizeYAML([]byte(input), 2)
	require.NoError(t, err)

	alphaIdx := strings.Index(string(got), "alpha:")
	zebraIdx := strings.Index(string(got), "zebra:")
	assert.Less(t, alphaIdx, zebraIdx)
}

func TestCanonicalizeYAML_PreservesComments(t *testing.T) {
	input := `
# keep me
sources:
  in: {} # inline
`
	got, err := format.CanonicalizeYAML([]byte(input), 2)
	require.NoError(t, err)
	assert.Contains(t, string(got), "keep me")
	assert.Contains(t, string(got), "inline")
}

func TestCanonicalizeYAML_InvalidYAMLErrors(t *testing.T) {
	_, err := format.CanonicalizeYAML([]byte("not: [valid"), 2)
	assert.Error(t, err)
}
