package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/graph"
	"github.com/opmodel/topology/internal/identity"
)

// TestValidateInputs_S2 reproduces scenario S2: a duplicated input, a
// transform with no inputs, and two unresolved input references.
func TestValidateInputs_S2(t *testing.T) {
	g := graph.New([]graph.NodeInput{
		{Key: key("in"), Kind: graph.Source},
		{Key: key("sample"), Kind: graph.Transform},
		{Key: key("sample2"), Kind: graph.Transform, Inputs: []identity.OutputID{ref("qwerty")}},
		{Key: key("out"), Kind: graph.Sink, Inputs: []identity.OutputID{ref("in"), ref("in"), ref("asdf")}},
	})

	m, errs := g.BuildInputMap()
	require.Empty(t, errs)

	got := g.ValidateInputs(m)
	want := []string{
		`Sink "out" has input "in" duplicated 2 times`,
		`Transform "sample" has no inputs`,
		`Input "qwerty" for transform "sample2" doesn't match any components.`,
		`Input "asdf" for sink "out" doesn't match any components.`,
	}
	require.Len(t, got, len(want))
	for i, w := range want {
		require.Equal(t, w, got[i].Error())
	}
}

func TestValidateInputs_NoErrorsOnCleanGraph(t *testing.T) {
	g := graph.New([]graph.NodeInput{
		{Key: key("in"), Kind: graph.Source},
		{Key: key("out"), Kind: graph.Sink, Inputs: []identity.OutputID{ref("in")}},
	})
	m, errs := g.BuildInputMap()
	require.Empty(t, errs)
	require.Empty(t, g.ValidateInputs(m))
}
