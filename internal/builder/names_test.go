package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/datatype"
	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/resource"
)

// stubCapability is the minimal Capability implementation used across
// builder tests; its behavior is irrelevant to the checks under test.
type stubCapability struct{ typeName string }

func (s stubCapability) TypeName() string                      { return s.typeName }
func (s stubCapability) OutputTypes() datatype.DataType         { return datatype.Log }
func (s stubCapability) RequiredInputTypes() datatype.DataType  { return datatype.Log }
func (s stubCapability) NamedOutputs() map[string]datatype.DataType { return nil }
func (s stubCapability) Resources() []resource.Resource        { return nil }
func (s stubCapability) SupportsAcknowledgements() bool        { return false }

// TestCheckUniqueNames_S3 reproduces scenario S3: a source and a transform
// declared with the same name.
func TestCheckUniqueNames_S3(t *testing.T) {
	b := builder.New()
	b.Sources.Set(identity.NewComponentKey("foo"), &builder.SourceOuter{Inner: stubCapability{"demo"}})
	b.Sources.Set(identity.NewComponentKey("bar"), &builder.SourceOuter{Inner: stubCapability{"demo"}})
	b.Transforms.Set(identity.NewComponentKey("foo"), &builder.TransformOuter{
		Inner:  stubCapability{"demo"},
		Inputs: []identity.OutputID{identity.NewOutputID(identity.NewComponentKey("bar"))},
	})
	b.Sinks.Set(identity.NewComponentKey("out"), &builder.SinkOuter{
		Inner:  stubCapability{"demo"},
		Inputs: []identity.OutputID{identity.NewOutputID(identity.NewComponentKey("foo"))},
	})

	errs := b.CheckUniqueNames()
	require.Len(t, errs, 1)
	require.Equal(t, `More than one component with name "foo" (source, transform).`, errs[0].Error())
}

func TestCheckUniqueNames_NoCollision(t *testing.T) {
	b := builder.New()
	b.Sources.Set(identity.NewComponentKey("in"), &builder.SourceOuter{Inner: stubCapability{"demo"}})
	b.Sinks.Set(identity.NewComponentKey("out"), &builder.SinkOuter{Inner: stubCapability{"demo"}})
	require.Empty(t, b.CheckUniqueNames())
}
