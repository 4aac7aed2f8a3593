// Package compiler orchestrates the full compile pipeline: uniqueness scan,
// expansion, graph construction, cycle detection, type/input validation,
// resource arbitration, acknowledgement propagation, and test binding. It
// is the single entry point the CLI calls.
package compiler

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/mitchellh/hashstructure"

	"github.com/opmodel/topology/internal/ack"
	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/expand"
	"github.com/opmodel/topology/internal/graph"
	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/resource"
	"github.com/opmodel/topology/internal/testbind"
)

// String names the phase for CLI-boundary diagnostics (errdetail.CompileError).
func (p phase) String() string {
	switch p {
	case phaseUniqueness:
		return "uniqueness"
	case phaseExpansion:
		return "expansion"
	case phaseGraph:
		return "graph"
	case phaseCycles:
		return "cycles"
	case phaseValidation:
		return "validation"
	case phaseResources:
		return "resources"
	case phaseAck:
		return "ack"
	case phaseTestBind:
		return "testbind"
	default:
		return "unknown"
	}
}

// phaseError attributes a phase error to its originating phase and, on a
// best-effort basis, the component it concerns — satisfying
// internal/errdetail's CompileError interface without requiring every
// phase's error type to carry that bookkeeping itself.
type phaseError struct {
	p   phase
	err error
}

func (e *phaseError) Error() string { return e.err.Error() }
func (e *phaseError) Unwrap() error { return e.err }
func (e *phaseError) Phase() string { return e.p.String() }

func (e *phaseError) Component() string {
	switch err := e.err.(type) {
	case *graph.CycleError:
		if len(err.Chain) > 0 {
			return err.Chain[0].String()
		}
	case *graph.ReferenceError:
		return err.Name
	case *graph.DuplicateInputError:
		return err.Name
	case *graph.EmptyInputsError:
		return err.Name
	case *graph.TypeError:
		return err.Consumer.String()
	case *graph.AmbiguousOutputError:
		return err.Name
	case *resource.ConflictError:
		if len(err.Claimants) > 0 {
			return err.Claimants[0].String()
		}
	case *testbind.ReferenceError:
		return err.Test
	case *expand.ExpansionError:
		return err.Key.String()
	case *builder.CollisionError:
		return err.Name
	case *builder.DuplicateNameError:
		return err.Name
	}
	return ""
}

// phase identifies which of the eight compile stages an error or warning
// originated from, used for deterministic sort ordering.
type phase int

const (
	phaseUniqueness phase = iota
	phaseExpansion
	phaseGraph
	phaseCycles
	phaseValidation
	phaseResources
	phaseAck
	phaseTestBind
)

// Warning is any non-fatal diagnostic the compiler surfaces on success.
type Warning interface {
	String() string
}

// sortableError pairs a raw error with the phase it belongs to, purely for
// cross-phase ordering.
type sortableError struct {
	phase phase
	err   error
}

// Compile runs every phase in strict order over b, returning the validated
// Config and warnings on success, or the maximal accumulated error set on
// failure. Each phase runs even if an earlier phase failed, provided its
// inputs don't depend on the failed phase's output, so callers see every
// independent problem in one pass rather than fixing errors one at a time.
func Compile(b *builder.Builder) (*builder.Config, []Warning, []error) {
	var sortableErrs []sortableError
	var warnings []Warning

	addErr := func(p phase, errs ...error) {
		for _, e := range errs {
			if e != nil {
				sortableErrs = append(sortableErrs, sortableError{phase: p, err: e})
			}
		}
	}

	// Phase 1: uniqueness scan.
	addErr(phaseUniqueness, b.CheckUniqueNames()...)

	// Phase 2: expansion fixpoint.
	addErr(phaseExpansion, expand.Run(b)...)

	// Phase 3: graph construction & input-map build.
	g := buildGraph(b)
	inputMap, mapErrs := g.BuildInputMap()
	addErr(phaseGraph, mapErrs...)
	g.BuildEdges(inputMap)
	addErr(phaseGraph, g.ValidateInputs(inputMap)...)

	// Phase 4: cycle detection.
	addErr(phaseCycles, g.DetectCycles(inputMap)...)

	// Phase 5: type validation and orphan warnings (inputs were validated in
	// phase 3).
	typeErrs, typeWarnings := g.CheckTypes()
	addErr(phaseValidation, typeErrs...)
	for _, w := range typeWarnings {
		warnings = append(warnings, w)
	}
	for _, w := range g.FindOrphans() {
		warnings = append(warnings, w)
	}

	// Phase 6: resource arbitration.
	addErr(phaseResources, resource.ConflictErrors(resource.Conflicts(collectClaims(b)))...)

	// Phase 7: ack propagation.
	for _, w := range ack.Propagate(g, b) {
		warnings = append(warnings, w)
	}

	// Phase 8: test binding.
	bound, bindErrs := testbind.Bind(b, inputMap)
	addErr(phaseTestBind, bindErrs...)

	if len(sortableErrs) > 0 {
		return nil, nil, sortErrors(sortableErrs)
	}

	b.Tests = bound
	cfg := &builder.Config{
		Globals:          b.Globals,
		Sources:          b.Sources,
		Transforms:       b.Transforms,
		Sinks:            b.Sinks,
		EnrichmentTables: b.EnrichmentTables,
		Secrets:          b.Secrets,
		Tests:            b.Tests,
		Expansions:       b.Expansions,
		Graph:            g,
		Hash:             Hash(b),
	}
	return cfg, warnings, nil
}

// sortErrors orders by phase only, via a stable sort: within one phase,
// errors keep the order the phase itself produced them in (several phases,
// like the input validator, hand-tune that order — duplicates before
// empty-inputs before unknown references — rather than a flat
// alphabetical one), so only the coarse cross-phase grouping is imposed
// here.
func sortErrors(in []sortableError) []error {
	sort.SliceStable(in, func(i, j int) bool { return in[i].phase < in[j].phase })
	out := make([]error, len(in))
	for i, e := range in {
		out[i] = &phaseError{p: e.phase, err: e.err}
	}
	return out
}

// buildGraph derives the graph package's node-description slice from a
// post-expansion builder.
func buildGraph(b *builder.Builder) *graph.Graph {
	var nodes []graph.NodeInput

	for _, key := range b.Sources.Keys() {
		s, _ := b.Sources.Get(key)
		nodes = append(nodes, graph.NodeInput{
			Key:          key,
			Kind:         graph.Source,
			OutputTypes:  s.Inner.OutputTypes(),
			NamedOutputs: s.Inner.NamedOutputs(),
		})
	}
	for _, key := range b.Transforms.Keys() {
		t, _ := b.Transforms.Get(key)
		nodes = append(nodes, graph.NodeInput{
			Key:                key,
			Kind:               graph.Transform,
			OutputTypes:        t.Inner.OutputTypes(),
			NamedOutputs:       t.Inner.NamedOutputs(),
			RequiredInputTypes: t.Inner.RequiredInputTypes(),
			Inputs:             t.Inputs,
		})
	}
	for _, key := range b.Sinks.Keys() {
		s, _ := b.Sinks.Get(key)
		nodes = append(nodes, graph.NodeInput{
			Key:                key,
			Kind:               graph.Sink,
			RequiredInputTypes: s.Inner.RequiredInputTypes(),
			Inputs:             s.Inputs,
		})
	}

	return graph.New(nodes)
}

// collectClaims gathers every resource claim declared by sources,
// transforms and sinks, plus a disk-buffer claim for each sink whose buffer
// has an ID. Enrichment tables and secrets are not walked.
func collectClaims(b *builder.Builder) []resource.Claim {
	var claims []resource.Claim
	addClaim := func(key identity.ComponentKey, res []resource.Resource) {
		if len(res) > 0 {
			claims = append(claims, resource.Claim{Key: key, Resources: res})
		}
	}
	for _, key := range b.Sources.Keys() {
		s, _ := b.Sources.Get(key)
		addClaim(key, s.Inner.Resources())
	}
	for _, key := range b.Transforms.Keys() {
		t, _ := b.Transforms.Get(key)
		addClaim(key, t.Inner.Resources())
	}
	for _, key := range b.Sinks.Keys() {
		s, _ := b.Sinks.Get(key)
		res := s.Inner.Resources()
		if s.Buffer.ID != "" {
			res = append(append([]resource.Resource(nil), res...), resource.NewDiskBuffer(s.Buffer.ID))
		}
		addClaim(key, res)
	}
	return claims
}

// canonicalComponent is the vtable-visible, hash-relevant view of one
// component: the compiler only ever observes a component through
// builder.Capability, so the canonical hash is built the same way, never by
// reflecting into a concrete type's private fields.
type canonicalComponent struct {
	Key                string
	Kind               string
	TypeName           string
	OutputTypes        builder.DataType
	RequiredInputTypes builder.DataType
	NamedOutputs       map[string]builder.DataType
	Resources          []string
	Inputs             []string
}

// Hash computes a deterministic fingerprint of b's declared topology,
// independent of the order fragments were loaded in (P1): every component
// is visited in sorted-key order and described solely through its
// Capability vtable, then folded through a structural hash and finished
// with SHA-256 for a fixed-length hex digest. EnterpriseTags is excluded.
func Hash(b *builder.Builder) string {
	var components []canonicalComponent

	appendFrom := func(kind string, keys []identity.ComponentKey, get func(identity.ComponentKey) (builder.Capability, []identity.OutputID)) {
		for _, key := range keys {
			capability, inputs := get(key)
			res := capability.Resources()
			resStrs := make([]string, len(res))
			for i, r := range res {
				resStrs[i] = r.String()
			}
			inputStrs := make([]string, len(inputs))
			for i, in := range inputs {
				inputStrs[i] = in.String()
			}
			components = append(components, canonicalComponent{
				Key:                key.String(),
				Kind:               kind,
				TypeName:           capability.TypeName(),
				OutputTypes:        capability.OutputTypes(),
				RequiredInputTypes: capability.RequiredInputTypes(),
				NamedOutputs:       capability.NamedOutputs(),
				Resources:          resStrs,
				Inputs:             inputStrs,
			})
		}
	}

	sourceKeys := append([]identity.ComponentKey(nil), b.Sources.Keys()...)
	identity.SortComponentKeys(sourceKeys)
	appendFrom("source", sourceKeys, func(k identity.ComponentKey) (builder.Capability, []identity.OutputID) {
		s, _ := b.Sources.Get(k)
		return s.Inner, nil
	})

	transformKeys := append([]identity.ComponentKey(nil), b.Transforms.Keys()...)
	identity.SortComponentKeys(transformKeys)
	appendFrom("transform", transformKeys, func(k identity.ComponentKey) (builder.Capability, []identity.OutputID) {
		t, _ := b.Transforms.Get(k)
		return t.Inner, t.Inputs
	})

	sinkKeys := append([]identity.ComponentKey(nil), b.Sinks.Keys()...)
	identity.SortComponentKeys(sinkKeys)
	appendFrom("sink", sinkKeys, func(k identity.ComponentKey) (builder.Capability, []identity.OutputID) {
		s, _ := b.Sinks.Get(k)
		return s.Inner, s.Inputs
	})

	enrichmentKeys := append([]identity.ComponentKey(nil), b.EnrichmentTables.Keys()...)
	identity.SortComponentKeys(enrichmentKeys)
	appendFrom("enrichment_table", enrichmentKeys, func(k identity.ComponentKey) (builder.Capability, []identity.OutputID) {
		e, _ := b.EnrichmentTables.Get(k)
		return e.Inner, nil
	})

	tests := append([]builder.TestDefinition(nil), b.Tests...)
	sort.Slice(tests, func(i, j int) bool { return tests[i].Name < tests[j].Name })

	snapshot := struct {
		Components []canonicalComponent
		Tests      []builder.TestDefinition
		DataDir    *string
		Timezone   *string
	}{
		Components: components,
		Tests:      tests,
		DataDir:    b.Globals.DataDir,
		Timezone:   b.Globals.Timezone,
	}

	digest, err := hashstructure.Hash(snapshot, hashstructure.FormatV2, nil)
	if err != nil {
		// hashstructure only fails on unsupported types (channels, funcs),
		// none of which canonicalComponent or TestDefinition contain.
		panic(err)
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], digest)
	sum := sha256.Sum256(buf[:])
	return hex.EncodeToString(sum[:])
}
