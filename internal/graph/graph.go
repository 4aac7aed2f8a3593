// Package graph builds and validates the typed DAG described in
// SPEC_FULL.md's graph module: cycle detection, reachability, input-map
// construction, and producer/consumer type-compatibility checking.
//
// The package deliberately does not import internal/builder: it operates on
// a small NodeInput description the caller (internal/compiler)
// derives from a Builder, which keeps the dependency graph acyclic
// (builder.Config embeds *graph.Graph).
package graph

import (
	"fmt"

	"github.com/opmodel/topology/internal/datatype"
	"github.com/opmodel/topology/internal/identity"
)

// Kind discriminates a node's role in the topology.
type Kind int

const (
	// Source is an ingress node.
	Source Kind = iota
	// Transform is an intermediate node.
	Transform
	// Sink is an egress node.
	Sink
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "Source"
	case Transform:
		return "Transform"
	case Sink:
		return "Sink"
	default:
		return "Component"
	}
}

// lower renders the kind for lowercase-leading diagnostic messages, e.g.
// "transform \"x\" has no inputs".
func (k Kind) lower() string {
	switch k {
	case Source:
		return "source"
	case Transform:
		return "transform"
	case Sink:
		return "sink"
	default:
		return "component"
	}
}

// NodeInput describes one post-expansion component for graph construction.
type NodeInput struct {
	Key  identity.ComponentKey
	Kind Kind

	// OutputTypes is the default-output type set (Sources/Transforms).
	OutputTypes datatype.DataType
	// NamedOutputs maps named ports to their type sets.
	NamedOutputs map[string]datatype.DataType
	// RequiredInputTypes is the set of event kinds this consumer requires
	// (Transforms/Sinks).
	RequiredInputTypes datatype.DataType
	// Inputs is the ordered, as-declared input reference list
	// (Transforms/Sinks); empty for Source.
	Inputs []identity.OutputID
}

// Node is one graph vertex after construction.
type Node struct {
	Key                identity.ComponentKey
	Kind               Kind
	OutputTypes        datatype.DataType
	NamedOutputs       map[string]datatype.DataType
	RequiredInputTypes datatype.DataType
	Inputs             []identity.OutputID
}

// Edge connects a specific producer output to a consumer component.
type Edge struct {
	From identity.OutputID
	To   identity.ComponentKey
}

// Graph is the typed DAG built from a post-expansion component set.
type Graph struct {
	Nodes map[identity.ComponentKey]*Node
	Edges []Edge

	// order preserves node insertion order for deterministic iteration.
	order []identity.ComponentKey
}

// New builds a Graph from the given nodes, without yet validating inputs,
// detecting cycles, or checking types — those are separate passes
// (ValidateInputs, DetectCycles, CheckTypes) so the compiler can run every
// independent phase and accumulate the maximal error set (§4.10).
// A key given more than once keeps only its first node.
func New(nodes []NodeInput) *Graph {
	g := &Graph{Nodes: make(map[identity.ComponentKey]*Node, len(nodes))}
	for _, n := range nodes {
		if _, dup := g.Nodes[n.Key]; dup {
			// The compiler's uniqueness phase already reports the duplicate.
			continue
		}
		node := &Node{
			Key:                n.Key,
			Kind:               n.Kind,
			OutputTypes:        n.OutputTypes,
			NamedOutputs:       n.NamedOutputs,
			RequiredInputTypes: n.RequiredInputTypes,
			Inputs:             n.Inputs,
		}
		g.Nodes[n.Key] = node
		g.order = append(g.order, n.Key)
	}
	return g
}

// OrderedKeys returns node keys in insertion order.
func (g *Graph) OrderedKeys() []identity.ComponentKey {
	return g.order
}

// AmbiguousOutputError reports that a canonical output string refers to
// more than one producer output, which is fatal — the input map cannot be
// built deterministically.
type AmbiguousOutputError struct {
	Name string
}

func (e *AmbiguousOutputError) Error() string {
	return fmt.Sprintf("output reference %q is ambiguous: matches more than one component output", e.Name)
}

// BuildInputMap builds the canonical-string -> OutputID map used to resolve
// every `inputs = [...]` reference. Producer outputs are every Source and
// Transform node's default output plus any named outputs they declare.
func (g *Graph) BuildInputMap() (map[string]identity.OutputID, []error) {
	m := make(map[string]identity.OutputID)
	var errs []error

	for _, key := range g.order {
		node := g.Nodes[key]
		if node.Kind == Sink {
			continue
		}
		addOutput := func(id identity.OutputID) {
			s := id.String()
			if _, exists := m[s]; exists {
				errs = append(errs, &AmbiguousOutputError{Name: s})
				return
			}
			m[s] = id
		}
		addOutput(identity.NewOutputID(node.Key))
		for port := range node.NamedOutputs {
			addOutput(identity.NewNamedOutputID(node.Key, port))
		}
	}

	return m, errs
}

// BuildEdges populates g.Edges by resolving each node's declared Inputs
// against the input map. Call after BuildInputMap; a reference missing from
// the map yields no edge (ValidateInputs is what reports it).
func (g *Graph) BuildEdges(inputMap map[string]identity.OutputID) {
	g.Edges = nil
	for _, key := range g.order {
		node := g.Nodes[key]
		for _, ref := range node.Inputs {
			if resolved, ok := inputMap[ref.String()]; ok {
				g.Edges = append(g.Edges, Edge{From: resolved, To: node.Key})
			}
		}
	}
}
