package builder

import (
	"fmt"

	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/ordered"
)

// Fragment is the result of parsing one configuration file; Builder is the
// accumulator fragments are folded into via Append. They share the same
// shape deliberately — a fragment IS a single-source builder.
type Fragment = Builder

// Builder is the mutable accumulator of sources, transforms, sinks,
// enrichment tables, secrets, tests, and globals described in
// SPEC_FULL.md's builder module. The zero value is not usable; use New.
type Builder struct {
	Globals Globals

	Sources          *ordered.Map[identity.ComponentKey, *SourceOuter]
	Transforms       *ordered.Map[identity.ComponentKey, *TransformOuter]
	Sinks            *ordered.Map[identity.ComponentKey, *SinkOuter]
	EnrichmentTables *ordered.Map[identity.ComponentKey, *EnrichmentTableOuter]
	Secrets          *ordered.Map[identity.ComponentKey, *SecretOuter]

	Tests []TestDefinition

	// Expansions records logical -> physical component expansions
	// (internal/expand writes this; empty until the expander runs).
	Expansions map[identity.ComponentKey][]identity.ComponentKey

	// ExpansionEntry records logical -> entry physical component, the
	// target `insert_at` resolves a logical name to (internal/expand writes
	// this alongside Expansions).
	ExpansionEntry map[identity.ComponentKey]identity.ComponentKey
}

// New returns an empty Builder ready for fragments to be appended.
func New() *Builder {
	return &Builder{
		Sources:          ordered.NewMap[identity.ComponentKey, *SourceOuter](),
		Transforms:       ordered.NewMap[identity.ComponentKey, *TransformOuter](),
		Sinks:            ordered.NewMap[identity.ComponentKey, *SinkOuter](),
		EnrichmentTables: ordered.NewMap[identity.ComponentKey, *EnrichmentTableOuter](),
		Secrets:          ordered.NewMap[identity.ComponentKey, *SecretOuter](),
		Expansions:       make(map[identity.ComponentKey][]identity.ComponentKey),
		ExpansionEntry:   make(map[identity.ComponentKey]identity.ComponentKey),
		Globals: Globals{
			Healthchecks: HealthcheckConfig{Enabled: true, RequireHealthy: false},
		},
	}
}

// CollisionError reports that a fragment being appended declares a
// component name already present in the same namespace.
type CollisionError struct {
	Kind string
	Name string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("duplicate %s id found: %s", e.Kind, e.Name)
}

// Append folds `other` into b, in place. Per SPEC_FULL.md's builder module:
// within one namespace, a colliding key is reported and the existing entry
// in b is left unmodified; globals merge per Globals.Merge; Tests
// concatenate unconditionally.
func (b *Builder) Append(other *Builder) []error {
	var errs []error

	errs = append(errs, appendNamespace(b.Sources, other.Sources, "source")...)
	errs = append(errs, appendNamespace(b.Transforms, other.Transforms, "transform")...)
	errs = append(errs, appendNamespace(b.Sinks, other.Sinks, "sink")...)
	errs = append(errs, appendNamespace(b.EnrichmentTables, other.EnrichmentTables, "enrichment table")...)
	errs = append(errs, appendNamespace(b.Secrets, other.Secrets, "secret")...)

	b.Globals = b.Globals.Merge(other.Globals)
	b.Tests = append(b.Tests, other.Tests...)

	for k, v := range other.Expansions {
		if b.Expansions == nil {
			b.Expansions = make(map[identity.ComponentKey][]identity.ComponentKey)
		}
		b.Expansions[k] = v
	}
	for k, v := range other.ExpansionEntry {
		if b.ExpansionEntry == nil {
			b.ExpansionEntry = make(map[identity.ComponentKey]identity.ComponentKey)
		}
		b.ExpansionEntry[k] = v
	}

	return errs
}

// appendNamespace merges one component namespace, reporting a
// CollisionError per already-present key and leaving that key's existing
// value untouched.
func appendNamespace[V any](into, from *ordered.Map[identity.ComponentKey, V], kind string) []error {
	var errs []error
	from.Range(func(key identity.ComponentKey, value V) bool {
		if into.Has(key) {
			errs = append(errs, &CollisionError{Kind: kind, Name: key.String()})
			return true
		}
		into.Set(key, value)
		return true
	})
	return errs
}

// AllComponentKeys returns every component key across four namespaces, in
// namespace-then-insertion order (sources, transforms, sinks, enrichment
// tables) — the order the compiler's uniqueness scan walks them in. Secret
// keys are not included.
func (b *Builder) AllComponentKeys() []identity.ComponentKey {
	var out []identity.ComponentKey
	out = append(out, b.Sources.Keys()...)
	out = append(out, b.Transforms.Keys()...)
	out = append(out, b.Sinks.Keys()...)
	out = append(out, b.EnrichmentTables.Keys()...)
	return out
}
