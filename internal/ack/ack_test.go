package ack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/ack"
	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/datatype"
	"github.com/opmodel/topology/internal/graph"
	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/resource"
)

type stubCapability struct{ ack bool }

func (s stubCapability) TypeName() string                          { return "demo" }
func (s stubCapability) OutputTypes() datatype.DataType             { return datatype.Log }
func (s stubCapability) RequiredInputTypes() datatype.DataType      { return datatype.Log }
func (s stubCapability) NamedOutputs() map[string]datatype.DataType { return nil }
func (s stubCapability) Resources() []resource.Resource             { return nil }
func (s stubCapability) SupportsAcknowledgements() bool             { return s.ack }

func key(name string) identity.ComponentKey  { return identity.NewComponentKey(name) }
func ref(name string) identity.OutputID      { return identity.NewOutputID(key(name)) }

// TestPropagate_S6 reproduces scenario S6's three-sink acknowledgement mix.
func TestPropagate_S6(t *testing.T) {
	b := builder.New()
	b.Sources.Set(key("in1"), &builder.SourceOuter{Inner: stubCapability{ack: true}})
	b.Sources.Set(key("in2"), &builder.SourceOuter{Inner: stubCapability{ack: true}})
	b.Sources.Set(key("in3"), &builder.SourceOuter{Inner: stubCapability{ack: true}})
	b.Transforms.Set(key("parse3"), &builder.TransformOuter{
		Inner: stubCapability{}, Inputs: []identity.OutputID{ref("in3")},
	})
	b.Sinks.Set(key("out1"), &builder.SinkOuter{Inner: stubCapability{}, Inputs: []identity.OutputID{ref("in1")}})
	b.Sinks.Set(key("out2"), &builder.SinkOuter{
		Inner: stubCapability{}, Inputs: []identity.OutputID{ref("in2")},
		Acknowledgements: builder.AckConfig{Set: true, Enabled: true},
	})
	b.Sinks.Set(key("out3"), &builder.SinkOuter{
		Inner: stubCapability{}, Inputs: []identity.OutputID{ref("parse3")},
		Acknowledgements: builder.AckConfig{Set: true, Enabled: true},
	})

	g := graph.New([]graph.NodeInput{
		{Key: key("in1"), Kind: graph.Source},
		{Key: key("in2"), Kind: graph.Source},
		{Key: key("in3"), Kind: graph.Source},
		{Key: key("parse3"), Kind: graph.Transform, Inputs: []identity.OutputID{ref("in3")}},
		{Key: key("out1"), Kind: graph.Sink, Inputs: []identity.OutputID{ref("in1")}},
		{Key: key("out2"), Kind: graph.Sink, Inputs: []identity.OutputID{ref("in2")}},
		{Key: key("out3"), Kind: graph.Sink, Inputs: []identity.OutputID{ref("parse3")}},
	})
	m, errs := g.BuildInputMap()
	require.Empty(t, errs)
	g.BuildEdges(m)

	warnings := ack.Propagate(g, b)
	assert.Empty(t, warnings)

	in1, _ := b.Sources.Get(key("in1"))
	in2, _ := b.Sources.Get(key("in2"))
	in3, _ := b.Sources.Get(key("in3"))
	assert.False(t, in1.SinkAcknowledgements)
	assert.True(t, in2.SinkAcknowledgements)
	assert.True(t, in3.SinkAcknowledgements)
}

// TestPropagate_MarksSourceIffPathReachesAckedSink builds a source that
// feeds one unacked sink directly and one acked sink through a
// three-transform chain, checking the source is marked solely because
// the acked path exists — transitivity through transforms only, not just
// direct adjacency.
func TestPropagate_MarksSourceIffPathReachesAckedSink(t *testing.T) {
	b := builder.New()
	b.Sources.Set(key("in"), &builder.SourceOuter{Inner: stubCapability{ack: true}})
	b.Transforms.Set(key("t1"), &builder.TransformOuter{Inner: stubCapability{}, Inputs: []identity.OutputID{ref("in")}})
	b.Transforms.Set(key("t2"), &builder.TransformOuter{Inner: stubCapability{}, Inputs: []identity.OutputID{ref("t1")}})
	b.Transforms.Set(key("t3"), &builder.TransformOuter{Inner: stubCapability{}, Inputs: []identity.OutputID{ref("t2")}})
	b.Sinks.Set(key("unacked"), &builder.SinkOuter{Inner: stubCapability{}, Inputs: []identity.OutputID{ref("in")}})
	b.Sinks.Set(key("acked"), &builder.SinkOuter{
		Inner: stubCapability{}, Inputs: []identity.OutputID{ref("t3")},
		Acknowledgements: builder.AckConfig{Set: true, Enabled: true},
	})

	g := graph.New([]graph.NodeInput{
		{Key: key("in"), Kind: graph.Source},
		{Key: key("t1"), Kind: graph.Transform, Inputs: []identity.OutputID{ref("in")}},
		{Key: key("t2"), Kind: graph.Transform, Inputs: []identity.OutputID{ref("t1")}},
		{Key: key("t3"), Kind: graph.Transform, Inputs: []identity.OutputID{ref("t2")}},
		{Key: key("unacked"), Kind: graph.Sink, Inputs: []identity.OutputID{ref("in")}},
		{Key: key("acked"), Kind: graph.Sink, Inputs: []identity.OutputID{ref("t3")}},
	})
	m, errs := g.BuildInputMap()
	require.Empty(t, errs)
	g.BuildEdges(m)

	warnings := ack.Propagate(g, b)
	assert.Empty(t, warnings)

	in, _ := b.Sources.Get(key("in"))
	assert.True(t, in.SinkAcknowledgements, "source reaches an acked sink through a 3-hop transform chain")
}

func TestPropagate_WarnsOnUnsupportedSource(t *testing.T) {
	b := builder.New()
	b.Sources.Set(key("in"), &builder.SourceOuter{Inner: stubCapability{ack: false}})
	b.Sinks.Set(key("out"), &builder.SinkOuter{
		Inner: stubCapability{}, Inputs: []identity.OutputID{ref("in")},
		Acknowledgements: builder.AckConfig{Set: true, Enabled: true},
	})

	g := graph.New([]graph.NodeInput{
		{Key: key("in"), Kind: graph.Source},
		{Key: key("out"), Kind: graph.Sink, Inputs: []identity.OutputID{ref("in")}},
	})
	m, errs := g.BuildInputMap()
	require.Empty(t, errs)
	g.BuildEdges(m)

	warnings := ack.Propagate(g, b)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), `sink "out" requires acknowledgements but source "in" does not support them`)
}
