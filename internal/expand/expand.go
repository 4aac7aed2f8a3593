// Package expand runs expandable transforms to a fixpoint, rewriting each
// logical transform into its declared inner sub-topology before the graph
// is built.
package expand

import (
	"fmt"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/identity"
)

// ExpansionError reports a failure during expansion: either the transform
// itself failed to expand, or an already-expanded (inner) transform was
// found to be expandable too, which is disallowed.
type ExpansionError struct {
	Key    identity.ComponentKey
	Reason string
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("transform %q: %s", e.Key.String(), e.Reason)
}

// Run expands every Expandable transform in b to a fixpoint, mutating b in
// place: each logical transform L expanding to physical set {P1..Pk} is
// replaced by inner transforms under keys L.P1..L.Pk, with Expansions[L]
// recording the physical set and inbound references to L rewritten to its
// entry output.
func Run(b *builder.Builder) []error {
	var errs []error

	for {
		logical := findExpandable(b)
		if logical == nil {
			break
		}

		for _, key := range logical {
			outer, _ := b.Transforms.Get(key)
			expandable, ok := outer.Inner.(builder.Expandable)
			if !ok {
				continue
			}

			result, err := expandable.Expand()
			if err != nil {
				errs = append(errs, &ExpansionError{Key: key, Reason: err.Error()})
				b.Transforms.Delete(key)
				continue
			}

			var physical []identity.ComponentKey
			var entryKey identity.ComponentKey
			for _, suffix := range result.Order {
				innerCap := result.Transforms[suffix]
				if _, nested := innerCap.(builder.Expandable); nested {
					errs = append(errs, &ExpansionError{
						Key:    key,
						Reason: fmt.Sprintf("inner transform %q is itself expandable (nested expansion is disallowed)", suffix),
					})
					continue
				}
				physicalKey := identity.JoinComponentKey(key.String(), suffix)
				physical = append(physical, physicalKey)

				inputs := outer.Inputs
				if suffix != result.EntryOutput {
					// Only the entry physical transform inherits the
					// logical transform's declared inputs; the rest
					// chain internally and take none from outside.
					inputs = nil
				}
				b.Transforms.Set(physicalKey, &builder.TransformOuter{Inner: innerCap, Inputs: inputs})

				if suffix == result.EntryOutput {
					entryKey = physicalKey
				}
			}

			b.Transforms.Delete(key)
			b.Expansions[key] = physical
			b.ExpansionEntry[key] = entryKey
			rewriteReferences(b, key, entryKey)
		}
	}

	return errs
}

// findExpandable returns the keys of every not-yet-expanded Expandable
// transform currently in b, in declaration order.
func findExpandable(b *builder.Builder) []identity.ComponentKey {
	var out []identity.ComponentKey
	for _, key := range b.Transforms.Keys() {
		outer, _ := b.Transforms.Get(key)
		if _, ok := outer.Inner.(builder.Expandable); ok {
			out = append(out, key)
		}
	}
	return out
}

// rewriteReferences replaces every inbound reference to logical's default
// output with a reference to entry's default output, across transforms and
// sinks.
func rewriteReferences(b *builder.Builder, logical, entry identity.ComponentKey) {
	logicalRef := identity.NewOutputID(logical).String()
	entryRef := identity.NewOutputID(entry)

	for _, key := range b.Transforms.Keys() {
		outer, _ := b.Transforms.Get(key)
		for i, in := range outer.Inputs {
			if in.String() == logicalRef {
				outer.Inputs[i] = entryRef
			}
		}
	}
	for _, key := range b.Sinks.Keys() {
		outer, _ := b.Sinks.Get(key)
		for i, in := range outer.Inputs {
			if in.String() == logicalRef {
				outer.Inputs[i] = entryRef
			}
		}
	}
}

// ExpandInput returns the physical components a (possibly logical)
// component key expands to, or [id] if it was never expanded.
func ExpandInput(b *builder.Builder, id identity.ComponentKey) []identity.ComponentKey {
	if physical, ok := b.Expansions[id]; ok {
		return physical
	}
	return []identity.ComponentKey{id}
}
