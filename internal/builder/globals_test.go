package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opmodel/topology/internal/builder"
)

func TestGlobalsMerge_HealthchecksAndOr(t *testing.T) {
	a := builder.Globals{Healthchecks: builder.HealthcheckConfig{Enabled: true, RequireHealthy: false}}
	b := builder.Globals{Healthchecks: builder.HealthcheckConfig{Enabled: false, RequireHealthy: true}}

	merged := a.Merge(b)
	assert.False(t, merged.Healthchecks.Enabled, "healthchecks.enabled is a conjunction across fragments")
	assert.True(t, merged.Healthchecks.RequireHealthy, "require_healthy is a disjunction across fragments")
}

func TestGlobalsMerge_OptionalScalarsLastWriterWins(t *testing.T) {
	dir1, dir2 := "/a", "/b"
	a := builder.Globals{DataDir: &dir1}
	b := builder.Globals{DataDir: &dir2}

	merged := a.Merge(b)
	assert.Equal(t, &dir2, merged.DataDir)

	unchanged := a.Merge(builder.Globals{})
	assert.Equal(t, &dir1, unchanged.DataDir)
}

func TestGlobalsMerge_AckConfigOnlyOverridesWhenSet(t *testing.T) {
	a := builder.Globals{DefaultAcknowledgements: builder.AckConfig{Set: true, Enabled: true}}
	b := builder.Globals{}

	merged := a.Merge(b)
	assert.True(t, merged.DefaultAcknowledgements.Enabled)

	overridden := a.Merge(builder.Globals{DefaultAcknowledgements: builder.AckConfig{Set: true, Enabled: false}})
	assert.False(t, overridden.DefaultAcknowledgements.Enabled)
}

func TestGlobalsMerge_EnterpriseTagsUnion(t *testing.T) {
	a := builder.Globals{EnterpriseTags: map[string]string{"team": "observability"}}
	b := builder.Globals{EnterpriseTags: map[string]string{"env": "prod"}}

	merged := a.Merge(b)
	assert.Equal(t, map[string]string{"team": "observability", "env": "prod"}, merged.EnterpriseTags)
}
