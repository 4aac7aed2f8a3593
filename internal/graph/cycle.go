package graph

import (
	"fmt"
	"strings"

	"github.com/opmodel/topology/internal/identity"
)

// color marks DFS visitation state for cycle detection.
type color int

const (
	white color = iota
	gray
	black
)

// CycleError reports a cycle found during DFS, with the chain rotated so
// it starts at its lexicographically minimum key (P5 — deterministic
// across runs).
type CycleError struct {
	Chain []identity.ComponentKey
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Chain))
	for i, k := range e.Chain {
		names[i] = k.String()
	}
	return fmt.Sprintf("Cyclic dependency detected in the chain [ %s ]", strings.Join(names, " -> "))
}

// adjacency returns, for each node, the set of nodes that consume its
// output — the dataflow direction (producer -> consumer) — resolved
// through the input map. Cycle chains are reported in this direction
// ("a -> b" means a feeds b"), matching §4.6's example output.
func (g *Graph) adjacency(inputMap map[string]identity.OutputID) map[identity.ComponentKey][]identity.ComponentKey {
	adj := make(map[identity.ComponentKey][]identity.ComponentKey, len(g.Nodes))
	for _, key := range g.order {
		node := g.Nodes[key]
		for _, ref := range node.Inputs {
			resolved, ok := inputMap[ref.String()]
			if !ok {
				continue // unresolved inputs are reported by ValidateInputs
			}
			adj[resolved.Key] = append(adj[resolved.Key], key)
		}
	}
	return adj
}

// DetectCycles runs a three-color DFS over the dataflow graph (producer ->
// consumer edges), returning one CycleError per distinct cycle found.
// Traversal order is the node insertion order, and for determinism each
// reported chain is rotated to start at its minimum key (§4.6).
func (g *Graph) DetectCycles(inputMap map[string]identity.OutputID) []error {
	adj := g.adjacency(inputMap)
	colors := make(map[identity.ComponentKey]color, len(g.Nodes))
	var errs []error
	seen := make(map[string]bool)

	var stack []identity.ComponentKey
	var visit func(key identity.ComponentKey)
	visit = func(key identity.ComponentKey) {
		colors[key] = gray
		stack = append(stack, key)

		for _, dep := range adj[key] {
			switch colors[dep] {
			case white:
				visit(dep)
			case gray:
				chain := extractCycle(stack, dep)
				sig := cycleSignature(chain)
				if !seen[sig] {
					seen[sig] = true
					errs = append(errs, &CycleError{Chain: rotateToMin(chain)})
				}
			case black:
				// already fully explored, no cycle through here
			}
		}

		stack = stack[:len(stack)-1]
		colors[key] = black
	}

	for _, key := range g.order {
		if colors[key] == white {
			visit(key)
		}
	}

	return errs
}

// extractCycle returns the portion of stack from the first occurrence of
// target to the end, plus target again to close the loop.
func extractCycle(stack []identity.ComponentKey, target identity.ComponentKey) []identity.ComponentKey {
	start := 0
	for i, k := range stack {
		if k.Equal(target) {
			start = i
			break
		}
	}
	chain := append([]identity.ComponentKey(nil), stack[start:]...)
	chain = append(chain, target)
	return chain
}

// rotateToMin rotates a closed chain (first == last) so it starts at its
// lexicographically minimum key, per §4.6's determinism requirement.
func rotateToMin(chain []identity.ComponentKey) []identity.ComponentKey {
	if len(chain) <= 1 {
		return chain
	}
	body := chain[:len(chain)-1] // drop the duplicated closing element
	minIdx := 0
	for i, k := range body {
		if k.Less(body[minIdx]) {
			minIdx = i
		}
	}
	rotated := make([]identity.ComponentKey, 0, len(chain))
	rotated = append(rotated, body[minIdx:]...)
	rotated = append(rotated, body[:minIdx]...)
	rotated = append(rotated, body[minIdx])
	return rotated
}

// cycleSignature identifies a cycle independent of its rotation, so the
// same cycle discovered from different start nodes is reported once.
func cycleSignature(chain []identity.ComponentKey) string {
	normalized := rotateToMin(chain)
	names := make([]string, len(normalized))
	for i, k := range normalized {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}
