package graph

import (
	"fmt"

	"github.com/opmodel/topology/internal/identity"
)

// OrphanWarning reports a component with no consumers (no sink reaches it
// backward through the graph).
type OrphanWarning struct {
	Kind Kind
	Name string
}

func (w *OrphanWarning) String() string {
	return fmt.Sprintf("%s %q has no consumers", w.Kind, w.Name)
}

// FindOrphans returns every Source/Transform not reachable backward from any
// Sink, Transforms before Sources and each group sorted by name (see
// sortOrphans). Call after BuildEdges.
func (g *Graph) FindOrphans() []*OrphanWarning {
	reachable := make(map[identity.ComponentKey]bool)

	// Build reverse adjacency: consumer -> producers it pulls from.
	producers := make(map[identity.ComponentKey][]identity.ComponentKey)
	for _, e := range g.Edges {
		producers[e.To] = append(producers[e.To], e.From.Key)
	}

	var stack []identity.ComponentKey
	for _, key := range g.order {
		if g.Nodes[key].Kind == Sink {
			stack = append(stack, key)
		}
	}
	for len(stack) > 0 {
		n := len(stack) - 1
		key := stack[n]
		stack = stack[:n]
		if reachable[key] {
			continue
		}
		reachable[key] = true
		for _, p := range producers[key] {
			if !reachable[p] {
				stack = append(stack, p)
			}
		}
	}

	var out []*OrphanWarning
	for _, key := range g.order {
		node := g.Nodes[key]
		if node.Kind == Sink {
			continue
		}
		if !reachable[key] {
			out = append(out, &OrphanWarning{Kind: node.Kind, Name: key.String()})
		}
	}
	return sortOrphans(out)
}

// sortOrphans orders warnings nearest-to-sink first (Transform before
// Source), then by name, giving operators the components closest to their
// intended output before the dangling inputs that feed them.
func sortOrphans(in []*OrphanWarning) []*OrphanWarning {
	out := append([]*OrphanWarning(nil), in...)
	rank := func(k Kind) int {
		if k == Transform {
			return 0
		}
		return 1
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if rank(a.Kind) < rank(b.Kind) {
				break
			}
			if rank(a.Kind) == rank(b.Kind) && a.Name <= b.Name {
				break
			}
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
