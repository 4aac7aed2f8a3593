// Package ack propagates sink acknowledgement requirements backward
// through transforms to the sources that must honor them.
package ack

import (
	"fmt"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/graph"
	"github.com/opmodel/topology/internal/identity"
)

// Warning reports a source targeted by an enabled acknowledgement chain
// that cannot itself support acknowledgements.
type Warning struct {
	Sink   identity.ComponentKey
	Source identity.ComponentKey
}

func (w *Warning) String() string {
	return fmt.Sprintf("sink %q requires acknowledgements but source %q does not support them", w.Sink.String(), w.Source.String())
}

// Propagate walks every sink whose effective acknowledgement policy is
// enabled backward through the graph to the sources that feed it, setting
// SourceOuter.SinkAcknowledgements. It is idempotent: a source already
// marked is left alone. Must run after graph construction (edges resolved)
// and before test binding.
func Propagate(g *graph.Graph, b *builder.Builder) []*Warning {
	var warnings []*Warning
	marked := make(map[identity.ComponentKey]bool)

	producers := make(map[identity.ComponentKey][]identity.ComponentKey)
	for _, e := range g.Edges {
		producers[e.To] = append(producers[e.To], e.From.Key)
	}

	for _, sinkKey := range b.Sinks.Keys() {
		sink, _ := b.Sinks.Get(sinkKey)
		if !sink.Acknowledgements.Effective(b.Globals.DefaultAcknowledgements) {
			continue
		}

		var stack []identity.ComponentKey
		stack = append(stack, producers[sinkKey]...)
		visited := make(map[identity.ComponentKey]bool)

		for len(stack) > 0 {
			n := len(stack) - 1
			key := stack[n]
			stack = stack[:n]
			if visited[key] {
				continue
			}
			visited[key] = true

			if source, ok := b.Sources.Get(key); ok {
				if !source.Inner.SupportsAcknowledgements() {
					warnings = append(warnings, &Warning{Sink: sinkKey, Source: key})
				}
				if !marked[key] {
					marked[key] = true
					source.SinkAcknowledgements = true
				}
				continue
			}
			stack = append(stack, producers[key]...)
		}
	}

	return warnings
}
