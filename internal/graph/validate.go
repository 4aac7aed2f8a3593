package graph

import (
	"fmt"

	"github.com/opmodel/topology/internal/datatype"
	"github.com/opmodel/topology/internal/identity"
)

// ReferenceError reports an input reference that does not resolve to any
// known producer output.
type ReferenceError struct {
	Ref  string
	Kind Kind
	Name string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Input %q for %s %q doesn't match any components.", e.Ref, e.Kind.lower(), e.Name)
}

// DuplicateInputError reports an input referenced more than once in a
// single consumer's input list.
type DuplicateInputError struct {
	Ref   string
	Kind  Kind
	Name  string
	Count int
}

func (e *DuplicateInputError) Error() string {
	return fmt.Sprintf("%s %q has input %q duplicated %d times", e.Kind, e.Name, e.Ref, e.Count)
}

// EmptyInputsError reports a transform or sink declared with no inputs.
type EmptyInputsError struct {
	Kind Kind
	Name string
}

func (e *EmptyInputsError) Error() string {
	return fmt.Sprintf("%s %q has no inputs", e.Kind, e.Name)
}

// ValidateInputs checks every Transform/Sink's declared inputs against the
// input map: unknown references, duplicate references within one consumer,
// and empty input lists. Errors are returned in kind-then-node declaration
// order, matching §8 scenario S2's expected ordering (duplicates first,
// then empty-inputs, then unknown references, in node-visitation order).
func (g *Graph) ValidateInputs(inputMap map[string]identity.OutputID) []error {
	var duplicateErrs, emptyErrs, referenceErrs []error

	for _, key := range g.order {
		node := g.Nodes[key]
		if node.Kind == Source {
			continue
		}

		if len(node.Inputs) == 0 {
			emptyErrs = append(emptyErrs, &EmptyInputsError{Kind: node.Kind, Name: key.String()})
			continue
		}

		counts := make(map[string]int)
		order := make([]string, 0, len(node.Inputs))
		for _, ref := range node.Inputs {
			s := ref.String()
			if counts[s] == 0 {
				order = append(order, s)
			}
			counts[s]++
		}
		for _, s := range order {
			if counts[s] > 1 {
				duplicateErrs = append(duplicateErrs, &DuplicateInputError{
					Ref: s, Kind: node.Kind, Name: key.String(), Count: counts[s],
				})
			}
		}

		for _, s := range order {
			if _, ok := inputMap[s]; !ok {
				referenceErrs = append(referenceErrs, &ReferenceError{Ref: s, Kind: node.Kind, Name: key.String()})
			}
		}
	}

	var errs []error
	errs = append(errs, duplicateErrs...)
	errs = append(errs, emptyErrs...)
	errs = append(errs, referenceErrs...)
	return errs
}

// TypeError reports that a producer's output type set and a consumer's
// required input type set have no overlap.
type TypeError struct {
	Producer identity.OutputID
	Consumer identity.ComponentKey
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("output %q is not a compatible input type for %q", e.Producer, e.Consumer)
}

// TypeWarning reports a partial (non-empty, non-superset) type overlap.
type TypeWarning struct {
	Producer identity.OutputID
	Consumer identity.ComponentKey
}

func (w *TypeWarning) String() string {
	return fmt.Sprintf("output %q only partially satisfies the input types %q requires", w.Producer, w.Consumer)
}

// outputTypes returns the type set for a specific producer output.
func (g *Graph) outputTypes(id identity.OutputID) (datatype.DataType, bool) {
	node, ok := g.Nodes[id.Key]
	if !ok {
		return 0, false
	}
	if id.Port == identity.DefaultOutput {
		return node.OutputTypes, true
	}
	t, ok := node.NamedOutputs[id.Port]
	return t, ok
}

// CheckTypes validates producer/consumer type compatibility for every edge
// resolved by BuildEdges: empty intersection is an error, non-empty but
// partial overlap is a warning (§3 invariant 6).
func (g *Graph) CheckTypes() (errs []error, warnings []*TypeWarning) {
	for _, e := range g.Edges {
		producerTypes, ok := g.outputTypes(e.From)
		if !ok {
			continue
		}
		consumer := g.Nodes[e.To]
		required := consumer.RequiredInputTypes
		if required == 0 {
			continue
		}
		if !producerTypes.Intersects(required) {
			errs = append(errs, &TypeError{Producer: e.From, Consumer: e.To})
			continue
		}
		if !producerTypes.IsSupersetOf(required) {
			warnings = append(warnings, &TypeWarning{Producer: e.From, Consumer: e.To})
		}
	}
	return errs, warnings
}
