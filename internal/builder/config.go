package builder

import (
	"github.com/opmodel/topology/internal/graph"
	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/ordered"
)

// Config is the validated, ready-to-run topology description the compiler
// produces on success. It is intended to be read-only after construction;
// the only sanctioned mutations post-construction are SetRequireHealthy and
// a small number of path overrides (§5).
type Config struct {
	Globals Globals

	Sources          *ordered.Map[identity.ComponentKey, *SourceOuter]
	Transforms       *ordered.Map[identity.ComponentKey, *TransformOuter]
	Sinks            *ordered.Map[identity.ComponentKey, *SinkOuter]
	EnrichmentTables *ordered.Map[identity.ComponentKey, *EnrichmentTableOuter]
	Secrets          *ordered.Map[identity.ComponentKey, *SecretOuter]

	Tests []TestDefinition

	Expansions map[identity.ComponentKey][]identity.ComponentKey

	Graph *graph.Graph

	// Hash is the deterministic SHA-256 of the canonical builder form this
	// Config was compiled from (§6 "Persisted state").
	Hash string
}

// SetRequireHealthy overrides the merged healthchecks.require_healthy
// setting. This is the CLI's --require-healthy flag applying its
// documented "CLI always wins" precedence (§9 open question), and must be
// called before the Config is handed to any consumer.
func (c *Config) SetRequireHealthy(v bool) {
	c.Globals.Healthchecks.RequireHealthy = v
}
