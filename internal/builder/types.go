// Package builder defines the mutable configuration accumulator that the
// loader folds parsed fragments into, and the read-only Config the compiler
// produces from it. This is the data model SPEC_FULL.md's "builder" module
// describes.
package builder

import (
	"github.com/opmodel/topology/internal/datatype"
	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/resource"
)

// DataType re-exports datatype.DataType for callers already importing
// builder; see internal/datatype for the bitset definition shared with
// internal/graph.
type DataType = datatype.DataType

// DataType constants re-exported from internal/datatype.
const (
	DataTypeLog    = datatype.Log
	DataTypeMetric = datatype.Metric
	DataTypeTrace  = datatype.Trace
	DataTypeAny    = datatype.Any
)

// Capability is the interface every concrete component's opaque "inner"
// configuration is accessed through. The compiler never inspects a
// component's type-specific fields directly — only through this vtable,
// matching SPEC_FULL's "dynamic polymorphism of components" design note.
type Capability interface {
	// TypeName is the registered type string, e.g. "kafka" or "http_sink".
	TypeName() string

	// OutputTypes returns the set of event kinds this component can emit
	// on its default output. Sinks return 0. Sources/transforms with named
	// outputs may report per-output types via NamedOutputs.
	OutputTypes() DataType

	// RequiredInputTypes returns the set of event kinds this component
	// requires on its input (transforms/sinks only; sources return 0).
	RequiredInputTypes() DataType

	// NamedOutputs returns additional named output ports beyond the
	// default, with their types. Most components return nil.
	NamedOutputs() map[string]DataType

	// Resources returns the externally-observable resources this
	// component claims (ports, descriptors, disk buffers).
	Resources() []resource.Resource

	// SupportsAcknowledgements reports whether a source can honor
	// end-to-end delivery acknowledgement.
	SupportsAcknowledgements() bool
}

// Expandable is implemented by transform configs that expand into an inner
// sub-topology. See internal/expand.
type Expandable interface {
	Capability

	// Expand returns the inner transform fragments this logical transform
	// expands to, keyed by the suffix appended to the logical name
	// ("L.<suffix>"), in declaration order, plus the suffix whose input
	// side is the expansion's entry point.
	Expand() (inner *ExpansionResult, err error)
}

// ExpansionResult is the sub-topology an Expandable transform produces.
type ExpansionResult struct {
	// Transforms maps suffix -> inner transform capability, in the order
	// they should be inserted.
	Order      []string
	Transforms map[string]Capability

	// EntryOutput is the suffix whose output should be substituted for any
	// reference to the logical (pre-expansion) transform name.
	EntryOutput string
}

// ProxyConfig is a pass-through placeholder for the proxy settings a
// source/sink/global section may declare; the compiler does not interpret
// proxy semantics, only merges and carries them (§1 out of scope: runtime).
type ProxyConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Address string `json:"address,omitempty"`
}

// AckConfig is the acknowledgements setting, accepting either the boolean
// shorthand or the structured `acknowledgements.enabled` form at parse time
// (see internal/format), normalized to this single struct.
type AckConfig struct {
	// Set is false when the field was absent from a fragment, so merging
	// can tell "unset" apart from "explicitly false".
	Set     bool
	Enabled bool
}

// Effective returns the ack setting to use given a fallback (e.g. the
// global default): the component's own setting if explicitly set, else the
// fallback.
func (a AckConfig) Effective(fallback AckConfig) bool {
	if a.Set {
		return a.Enabled
	}
	return fallback.Enabled
}

// HealthcheckConfig mirrors the teacher's boolean AND/OR merge rules from
// SPEC_FULL.md's builder module.
type HealthcheckConfig struct {
	Enabled        bool
	RequireHealthy bool
}

// BufferConfig describes a sink's on-disk buffer, if any. MaxSize is carried
// as the raw size string the fragment declared (e.g. "256Mi"); it is not
// parsed or validated.
type BufferConfig struct {
	Type    string `json:"type,omitempty"`     // "memory" or "disk"
	MaxSize string `json:"max_size,omitempty"` // raw quantity string, e.g. "256Mi"; empty if unset
	ID      string `json:"id,omitempty"`       // disk buffer name, used as a resource.DiskBuffer claim
}

// SourceOuter wraps a concrete source capability plus attributes common to
// all sources.
type SourceOuter struct {
	Inner Capability
	Proxy *ProxyConfig

	// SinkAcknowledgements is set by the ack propagator (internal/ack);
	// false at parse time regardless of fragment content.
	SinkAcknowledgements bool
}

// TransformOuter wraps a concrete transform capability plus its ordered
// input references.
type TransformOuter struct {
	Inner  Capability
	Inputs []identity.OutputID
}

// SinkOuter wraps a concrete sink capability plus attributes common to all
// sinks.
type SinkOuter struct {
	Inner            Capability
	Inputs           []identity.OutputID
	Healthcheck      HealthcheckConfig
	Buffer           BufferConfig
	Acknowledgements AckConfig
	Proxy            *ProxyConfig
}

// EnrichmentTableOuter wraps an enrichment-table capability. Enrichment
// tables participate in the global name-uniqueness namespace (§3 invariant
// 1) but never appear in the dataflow graph.
type EnrichmentTableOuter struct {
	Inner Capability
}

// SecretOuter wraps a secret-backend reference capability.
type SecretOuter struct {
	Inner Capability
}
