// Package testbind resolves a builder's stringy test definitions against
// the post-expansion, post-graph component set into typed references.
package testbind

import (
	"fmt"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/expand"
	"github.com/opmodel/topology/internal/identity"
)

// ReferenceError reports a test reference that did not resolve to any known
// component or output.
type ReferenceError struct {
	Test  string
	Field string
	Ref   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("test %q: %s %q doesn't match any component", e.Test, e.Field, e.Ref)
}

// Bind resolves every TestDefinition in b against the expansion map and the
// graph's input map and returns a copy of each kept definition with its
// Resolved field filled in; b.Tests itself is left unchanged. A test whose extract_from list resolves to zero outputs is dropped
// silently (not returned in the result, no error) to support per-feature
// conditional tests; every other missing reference accumulates as an error.
func Bind(b *builder.Builder, inputMap map[string]identity.OutputID) ([]builder.TestDefinition, []error) {
	var bound []builder.TestDefinition
	var errs []error

	for _, t := range b.Tests {
		insertAt, ok := resolveInsertAt(b, t.InsertAt)
		if !ok {
			errs = append(errs, &ReferenceError{Test: t.Name, Field: "insert_at", Ref: t.InsertAt})
			continue
		}

		extractFrom, extractErrs := resolveOutputs(b, inputMap, t.ExtractFrom)
		if len(t.ExtractFrom) > 0 && len(extractFrom) == 0 {
			// Every candidate failed to resolve: drop the test silently.
			continue
		}
		for _, ref := range extractErrs {
			errs = append(errs, &ReferenceError{Test: t.Name, Field: "extract_from", Ref: ref})
		}

		noOutputsFrom, noOutputsErrs := resolveOutputs(b, inputMap, t.NoOutputsFrom)
		for _, ref := range noOutputsErrs {
			errs = append(errs, &ReferenceError{Test: t.Name, Field: "no_outputs_from", Ref: ref})
		}

		resolved := t
		resolved.Resolved = &builder.ResolvedTest{
			InsertAt:      insertAt,
			ExtractFrom:   extractFrom,
			NoOutputsFrom: noOutputsFrom,
		}
		bound = append(bound, resolved)
	}

	return bound, errs
}

// resolveInsertAt resolves a logical or physical transform name to its
// post-expansion entry transform key.
func resolveInsertAt(b *builder.Builder, name string) (identity.ComponentKey, bool) {
	key := identity.NewComponentKey(name)
	entry, expanded := b.ExpansionEntry[key]
	if !expanded {
		entry = key
	}
	if !b.Transforms.Has(entry) {
		// Physical transforms produced by expansion are keyed scope + name.
		if base, sub, dotted := identity.ParseOutputID(name); dotted {
			if physical := identity.JoinComponentKey(base, sub); b.Transforms.Has(physical) {
				return physical, true
			}
		}
		return identity.ComponentKey{}, false
	}
	return entry, true
}

// resolveOutputs expands each reference through the expansion map, then
// resolves each physical candidate against the graph's input map. A
// reference resolves if at least one of its physical expansions does
// (§4.9's "valid if any resolves" permissive rule); unresolved refs are
// returned separately for the caller to report. Each ref is tried first as
// a plain component name (its default output), then — if it contains a dot
// — as a base component plus named port, matching the same base/port
// ambiguity every downstream lookup in internal/graph resolves by trying
// the whole string before splitting it.
func resolveOutputs(b *builder.Builder, inputMap map[string]identity.OutputID, refs []string) (resolved []identity.OutputID, unresolved []string) {
	for _, ref := range refs {
		found := false

		for _, c := range expand.ExpandInput(b, identity.NewComponentKey(ref)) {
			if resolvedID, ok := inputMap[identity.NewOutputID(c).String()]; ok {
				resolved = append(resolved, resolvedID)
				found = true
			}
		}

		if base, port, hasPort := identity.ParseOutputID(ref); hasPort {
			for _, c := range expand.ExpandInput(b, identity.NewComponentKey(base)) {
				if resolvedID, ok := inputMap[identity.NewNamedOutputID(c, port).String()]; ok {
					resolved = append(resolved, resolvedID)
					found = true
				}
			}
		}

		if !found {
			unresolved = append(unresolved, ref)
		}
	}
	return resolved, unresolved
}
