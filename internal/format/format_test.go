package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/format"
	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/registry"
)

const sampleTOML = `
data_dir = "/var/lib/topology"

[healthchecks]
enabled = true

[sources.in]
type = "file_descriptor"
fd = 10

[transforms.sample]
type = "remap"
inputs = ["in"]
output_types = ["log"]
required_input_types = ["log"]

[sinks.out]
type = "socket_sink"
inputs = ["sample"]
address = "0.0.0.0"
port = 9000

[[tests]]
name = "basic"
insert_at = "sample"
extract_from = ["out"]
`

func TestParse_TOML(t *testing.T) {
	reg := registry.New()
	frag, err := format.Parse([]byte(sampleTOML), format.TOML, reg)
	require.NoError(t, err)

	require.True(t, frag.Sources.Has(identity.NewComponentKey("in")))
	require.True(t, frag.Transforms.Has(identity.NewComponentKey("sample")))
	require.True(t, frag.Sinks.Has(identity.NewComponentKey("out")))

	sample, _ := frag.Transforms.Get(identity.NewComponentKey("sample"))
	require.Len(t, sample.Inputs, 1)
	assert.Equal(t, "in", sample.Inputs[0].String())

	require.Len(t, frag.Tests, 1)
	assert.Equal(t, "basic", frag.Tests[0].Name)

	require.NotNil(t, frag.Globals.DataDir)
	assert.Equal(t, "/var/lib/topology", *frag.Globals.DataDir)
}

func TestParse_MissingTypeIsError(t *testing.T) {
	reg := registry.New()
	_, err := format.Parse([]byte(`[sources.in]
fd = 10
`), format.TOML, reg)
	require.Error(t, err)
}

func TestHintFromPath(t *testing.T) {
	assert.Equal(t, format.TOML, format.HintFromPath("a.toml"))
	assert.Equal(t, format.YAML, format.HintFromPath("a.yaml"))
	assert.Equal(t, format.JSON, format.HintFromPath("a.json"))
	assert.Equal(t, format.Unknown, format.HintFromPath("a.txt"))
}
