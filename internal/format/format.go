// Package format parses a single configuration fragment (TOML, YAML, or
// JSON) into a builder.Fragment, deferring component-specific decoding to
// an injected registry.Registry.
package format

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/identity"
)

// Decoder resolves a component's `type` string to a concrete Capability,
// implemented by *registry.Registry. Declared as an interface here so
// format does not need to import registry's CUE/schema dependencies.
type Decoder interface {
	Decode(typeName string, raw json.RawMessage) (builder.Capability, error)
}

type rawGlobals struct {
	DataDir       *string                `json:"data_dir,omitempty"`
	Schema        *builder.SchemaOptions `json:"schema,omitempty"`
	API           *builder.APIOptions    `json:"api,omitempty"`
	Healthchecks  *rawHealthchecks       `json:"healthchecks,omitempty"`
	Proxy         *builder.ProxyConfig   `json:"proxy,omitempty"`
	Acknowledgements *rawAckShorthand    `json:"acknowledgements,omitempty"`
	Timezone      *string                `json:"timezone,omitempty"`
	Enterprise    *rawEnterprise         `json:"enterprise,omitempty"`
}

type rawHealthchecks struct {
	Enabled        *bool `json:"enabled,omitempty"`
	RequireHealthy *bool `json:"require_healthy,omitempty"`
}

type rawEnterprise struct {
	Tags map[string]string `json:"tags,omitempty"`
}

// rawAckShorthand accepts either `acknowledgements = true` or
// `acknowledgements = { enabled = true }`, normalized in UnmarshalJSON.
type rawAckShorthand struct {
	Enabled bool
}

func (a *rawAckShorthand) UnmarshalJSON(b []byte) error {
	var asBool bool
	if err := json.Unmarshal(b, &asBool); err == nil {
		a.Enabled = asBool
		return nil
	}
	var asStruct struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.Unmarshal(b, &asStruct); err != nil {
		return fmt.Errorf("acknowledgements: expected bool or {enabled: bool}: %w", err)
	}
	a.Enabled = asStruct.Enabled
	return nil
}

type rawComponentSection map[string]json.RawMessage

type rawTest struct {
	Name          string   `json:"name"`
	InsertAt      string   `json:"insert_at"`
	ExtractFrom   []string `json:"extract_from,omitempty"`
	NoOutputsFrom []string `json:"no_outputs_from,omitempty"`
}

type rawDoc struct {
	rawGlobals

	Sources          rawComponentSection `json:"sources,omitempty"`
	Transforms       rawComponentSection `json:"transforms,omitempty"`
	Sinks            rawComponentSection `json:"sinks,omitempty"`
	EnrichmentTables rawComponentSection `json:"enrichment_tables,omitempty"`
	Secrets          rawComponentSection `json:"secrets,omitempty"`

	Tests []rawTest `json:"tests,omitempty"`
}

// sortedKeys returns a section's component names sorted, the best ordering
// the JSON-bridged decode path can offer (object key order isn't preserved
// across the TOML/YAML -> JSON -> map round trip).
func sortedKeys(section rawComponentSection) []string {
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes one fragment's bytes under hint into a builder.Fragment,
// routing each component's raw configuration through dec.
func Parse(data []byte, hint Hint, dec Decoder) (*builder.Fragment, error) {
	sections, err := toJSONMap(data, hint)
	if err != nil {
		return nil, err
	}
	full, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("re-marshaling fragment: %w", err)
	}
	var doc rawDoc
	if err := json.Unmarshal(full, &doc); err != nil {
		return nil, fmt.Errorf("decoding fragment: %w", err)
	}

	frag := builder.New()
	frag.Globals = buildGlobals(doc.rawGlobals)

	if err := decodeSection(doc.Sources, dec, func(key identity.ComponentKey, cap builder.Capability) {
		frag.Sources.Set(key, &builder.SourceOuter{Inner: cap})
	}); err != nil {
		return nil, err
	}
	if err := decodeTransforms(doc.Transforms, dec, frag); err != nil {
		return nil, err
	}
	if err := decodeSinks(doc.Sinks, dec, frag); err != nil {
		return nil, err
	}
	if err := decodeSection(doc.EnrichmentTables, dec, func(key identity.ComponentKey, cap builder.Capability) {
		frag.EnrichmentTables.Set(key, &builder.EnrichmentTableOuter{Inner: cap})
	}); err != nil {
		return nil, err
	}
	if err := decodeSection(doc.Secrets, dec, func(key identity.ComponentKey, cap builder.Capability) {
		frag.Secrets.Set(key, &builder.SecretOuter{Inner: cap})
	}); err != nil {
		return nil, err
	}

	for _, t := range doc.Tests {
		frag.Tests = append(frag.Tests, builder.TestDefinition{
			Name:          t.Name,
			InsertAt:      t.InsertAt,
			ExtractFrom:   t.ExtractFrom,
			NoOutputsFrom: t.NoOutputsFrom,
		})
	}

	return frag, nil
}

func buildGlobals(raw rawGlobals) builder.Globals {
	g := builder.Globals{
		DataDir:  raw.DataDir,
		Schema:   raw.Schema,
		API:      raw.API,
		Timezone: raw.Timezone,
		DefaultProxy: raw.Proxy,
		Healthchecks: builder.HealthcheckConfig{Enabled: true},
	}
	if raw.Healthchecks != nil {
		if raw.Healthchecks.Enabled != nil {
			g.Healthchecks.Enabled = *raw.Healthchecks.Enabled
		}
		if raw.Healthchecks.RequireHealthy != nil {
			g.Healthchecks.RequireHealthy = *raw.Healthchecks.RequireHealthy
		}
	}
	if raw.Acknowledgements != nil {
		g.DefaultAcknowledgements = builder.AckConfig{Set: true, Enabled: raw.Acknowledgements.Enabled}
	}
	if raw.Enterprise != nil {
		g.EnterpriseTags = raw.Enterprise.Tags
	}
	return g
}

type componentTypeSniff struct {
	Type string `json:"type"`
}

func componentType(raw json.RawMessage) (string, error) {
	var s componentTypeSniff
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("decoding component: %w", err)
	}
	if s.Type == "" {
		return "", fmt.Errorf("component is missing required \"type\" field")
	}
	return s.Type, nil
}

func decodeSection(section rawComponentSection, dec Decoder, add func(identity.ComponentKey, builder.Capability)) error {
	for _, name := range sortedKeys(section) {
		raw := section[name]
		typeName, err := componentType(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		cap, err := dec.Decode(typeName, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		key, err := identity.ParseComponentKey(name)
		if err != nil {
			return err
		}
		add(key, cap)
	}
	return nil
}

type rawTransformOuter struct {
	Inputs []string `json:"inputs,omitempty"`
}

func decodeTransforms(section rawComponentSection, dec Decoder, frag *builder.Fragment) error {
	for _, name := range sortedKeys(section) {
		raw := section[name]
		typeName, err := componentType(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		cap, err := dec.Decode(typeName, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		var outer rawTransformOuter
		if err := json.Unmarshal(raw, &outer); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		key, err := identity.ParseComponentKey(name)
		if err != nil {
			return err
		}
		frag.Transforms.Set(key, &builder.TransformOuter{Inner: cap, Inputs: parseInputs(outer.Inputs)})
	}
	return nil
}

type rawSinkOuter struct {
	Inputs           []string               `json:"inputs,omitempty"`
	Healthcheck      *rawHealthcheckField    `json:"healthcheck,omitempty"`
	Buffer           *builder.BufferConfig   `json:"buffer,omitempty"`
	Acknowledgements *rawAckShorthand        `json:"acknowledgements,omitempty"`
	Proxy            *builder.ProxyConfig    `json:"proxy,omitempty"`
}

type rawHealthcheckField struct {
	Enabled        bool `json:"enabled"`
	RequireHealthy bool `json:"require_healthy"`
}

func decodeSinks(section rawComponentSection, dec Decoder, frag *builder.Fragment) error {
	for _, name := range sortedKeys(section) {
		raw := section[name]
		typeName, err := componentType(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		cap, err := dec.Decode(typeName, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		var outer rawSinkOuter
		if err := json.Unmarshal(raw, &outer); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		key, err := identity.ParseComponentKey(name)
		if err != nil {
			return err
		}
		sink := &builder.SinkOuter{
			Inner:  cap,
			Inputs: parseInputs(outer.Inputs),
			Proxy:  outer.Proxy,
		}
		if outer.Healthcheck != nil {
			sink.Healthcheck = builder.HealthcheckConfig{
				Enabled:        outer.Healthcheck.Enabled,
				RequireHealthy: outer.Healthcheck.RequireHealthy,
			}
		}
		if outer.Buffer != nil {
			sink.Buffer = *outer.Buffer
		}
		if outer.Acknowledgements != nil {
			sink.Acknowledgements = builder.AckConfig{Set: true, Enabled: outer.Acknowledgements.Enabled}
		}
		frag.Sinks.Set(key, sink)
	}
	return nil
}

// parseInputs turns declared reference strings into OutputIDs. A reference
// without a dot is a bare component name; one with a dot is ambiguous
// between "component.port" and a dotted component name, a decision
// internal/graph resolves against the full input map — here we always
// split on the last dot, matching identity.ParseOutputID's documented
// syntactic-only behavior.
func parseInputs(refs []string) []identity.OutputID {
	out := make([]identity.OutputID, 0, len(refs))
	for _, ref := range refs {
		base, port, hasPort := identity.ParseOutputID(ref)
		if !hasPort {
			out = append(out, identity.NewOutputID(identity.NewComponentKey(base)))
			continue
		}
		out = append(out, identity.NewNamedOutputID(identity.NewComponentKey(base), port))
	}
	return out
}
