package builder

// APIOptions mirrors the `[api]` fragment section.
type APIOptions struct {
	Enabled    bool   `json:"enabled,omitempty"`
	Address    string `json:"address,omitempty"`
	Playground bool   `json:"playground,omitempty"`
}

// SchemaOptions mirrors the `[schema]` fragment section (the log-schema
// field-naming overrides, not the event-type schema); see
// internal/logschema for the process-wide singleton this seeds.
type SchemaOptions struct {
	HostKey      string `json:"host_key,omitempty"`
	MessageKey   string `json:"message_key,omitempty"`
	TimestampKey string `json:"timestamp_key,omitempty"`
}

// Globals holds the top-level scalar and section settings shared by every
// fragment, merged per SPEC_FULL.md's builder module.
type Globals struct {
	DataDir *string

	Schema       *SchemaOptions
	API          *APIOptions
	Healthchecks HealthcheckConfig

	DefaultProxy           *ProxyConfig
	DefaultAcknowledgements AckConfig

	Timezone *string

	// EnterpriseTags is excluded from the canonical hash (§6 "Persisted
	// state") so operator tagging never perturbs rollout decisions.
	EnterpriseTags map[string]string
}

// Merge folds `other` into a copy of g using the documented per-field
// precedence: booleans AND/OR per field, optional scalars last-writer-wins
// when the newcomer is set, data-dir last-writer-wins unconditionally.
func (g Globals) Merge(other Globals) Globals {
	out := g

	// healthchecks.enabled is a conjunction (strictest fragment wins);
	// require_healthy is a disjunction (any fragment requiring it wins).
	out.Healthchecks.Enabled = g.Healthchecks.Enabled && other.Healthchecks.Enabled
	out.Healthchecks.RequireHealthy = g.Healthchecks.RequireHealthy || other.Healthchecks.RequireHealthy

	if other.DataDir != nil {
		out.DataDir = other.DataDir
	}
	if other.Schema != nil {
		out.Schema = other.Schema
	}
	if other.API != nil {
		out.API = other.API
	}
	if other.DefaultProxy != nil {
		out.DefaultProxy = other.DefaultProxy
	}
	if other.DefaultAcknowledgements.Set {
		out.DefaultAcknowledgements = other.DefaultAcknowledgements
	}
	if other.Timezone != nil {
		out.Timezone = other.Timezone
	}

	if len(other.EnterpriseTags) > 0 {
		merged := make(map[string]string, len(out.EnterpriseTags)+len(other.EnterpriseTags))
		for k, v := range out.EnterpriseTags {
			merged[k] = v
		}
		for k, v := range other.EnterpriseTags {
			merged[k] = v
		}
		out.EnterpriseTags = merged
	}

	return out
}
