package builder

import "github.com/opmodel/topology/internal/identity"

// TestDefinition is one `[[tests]]` entry. Before test binding (§4.9) the
// reference fields are stringy, as written in the fragment; after binding
// the Resolved fields carry typed OutputIDs. Stringify∘resolve is identity
// modulo normalization (P3-adjacent round-trip guarantee from §8).
type TestDefinition struct {
	Name string

	// InsertAt names the transform the test's synthetic input event is
	// inserted at (pre-expansion, a logical or physical component name).
	InsertAt string

	// ExtractFrom names the outputs the test asserts against.
	ExtractFrom []string

	// NoOutputsFrom names outputs the test asserts emit nothing.
	NoOutputsFrom []string

	// Resolved is filled in by internal/testbind; nil before binding.
	Resolved *ResolvedTest
}

// ResolvedTest carries the typed references a stringy TestDefinition
// resolves to once the graph exists.
type ResolvedTest struct {
	InsertAt      identity.ComponentKey
	ExtractFrom   []identity.OutputID
	NoOutputsFrom []identity.OutputID
}
