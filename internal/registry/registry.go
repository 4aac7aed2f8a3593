// Package registry implements the component registry: a decoder lookup
// keyed by the `type` string every source/transform/sink/enrichment table
// declares, each entry producing a builder.Capability.
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/opmodel/topology/internal/builder"
)

// DecodeFunc turns one component's raw decoded configuration into a
// concrete Capability. The resource-bearing built-ins (see builtins.go)
// register decoders for their own shape; a type with no registered decoder
// falls back to DecodeGeneric.
type DecodeFunc func(raw json.RawMessage) (builder.Capability, error)

// Registry maps a component `type` string to its decoder.
type Registry struct {
	decoders map[string]DecodeFunc
}

// New returns a Registry pre-populated with the built-in resource-bearing
// component types (file_descriptor, socket_source, socket_sink) plus the
// generic fallback path.
func New() *Registry {
	r := &Registry{decoders: make(map[string]DecodeFunc)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces the decoder for typeName.
func (r *Registry) Register(typeName string, fn DecodeFunc) {
	r.decoders[typeName] = fn
}

// Decode runs the decoder registered for typeName. When none is registered,
// DecodeGeneric is used as the fallback, since
// every component declares its capability-relevant attributes directly in
// its own configuration (see builder.GenericSpec).
func (r *Registry) Decode(typeName string, raw json.RawMessage) (builder.Capability, error) {
	if fn, ok := r.decoders[typeName]; ok {
		return fn(raw)
	}
	return DecodeGeneric(raw)
}

// DecodeGeneric decodes raw into a builder.GenericSpec and builds a
// Capability (or Expandable, if the spec declares an expand block) from it.
func DecodeGeneric(raw json.RawMessage) (builder.Capability, error) {
	var spec builder.GenericSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("decoding component: %w", err)
	}
	cap, err := builder.NewGenericCapability(spec)
	if err != nil {
		return nil, err
	}
	if spec.Expand != nil {
		return &builder.GenericExpandable{GenericCapability: cap}, nil
	}
	return cap, nil
}
