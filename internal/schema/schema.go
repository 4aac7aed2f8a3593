// Package schema provides optional CUE-based structural validation of a
// component's raw configuration before decode, repurposing the pack's CUE
// tooling from Kubernetes manifest schemas to component-config schemas.
package schema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Validator holds one compiled CUE schema per registered component type.
// A type with no registered schema is treated as permissive: Validate is a
// no-op for it, since not every component needs structural constraints
// beyond what json.Unmarshal already enforces on its Go-typed fields.
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{ctx: cuecontext.New(), schemas: make(map[string]cue.Value)}
}

// RegisterSchema compiles src as a CUE schema and associates it with
// typeName. src is expected to define the shape of that component's
// configuration, e.g. `fd: uint32 & >=0`.
func (v *Validator) RegisterSchema(typeName, src string) error {
	val := v.ctx.CompileString(src)
	if val.Err() != nil {
		return fmt.Errorf("compiling schema for %q: %w", typeName, val.Err())
	}
	v.schemas[typeName] = val
	return nil
}

// Validate unifies raw (already decoded into a Go value — typically
// map[string]any from the format package) against typeName's schema, if
// one is registered.
func (v *Validator) Validate(typeName string, raw any) error {
	schema, ok := v.schemas[typeName]
	if !ok {
		return nil
	}
	instance := v.ctx.Encode(raw)
	if instance.Err() != nil {
		return fmt.Errorf("encoding %q configuration for validation: %w", typeName, instance.Err())
	}
	unified := schema.Unify(instance)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("component type %q failed schema validation: %w", typeName, err)
	}
	return nil
}
