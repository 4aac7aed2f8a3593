package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/identity"
)

func TestAppend_MergesDisjointNamespaces(t *testing.T) {
	b := builder.New()
	other := builder.New()
	other.Sources.Set(identity.NewComponentKey("in"), &builder.SourceOuter{Inner: stubCapability{"demo"}})
	other.Sinks.Set(identity.NewComponentKey("out"), &builder.SinkOuter{Inner: stubCapability{"demo"}})

	errs := b.Append(other)
	require.Empty(t, errs)
	assert.True(t, b.Sources.Has(identity.NewComponentKey("in")))
	assert.True(t, b.Sinks.Has(identity.NewComponentKey("out")))
}

func TestAppend_CollisionKeepsExistingAndReportsError(t *testing.T) {
	b := builder.New()
	first := stubCapability{"first"}
	second := stubCapability{"second"}
	b.Sources.Set(identity.NewComponentKey("in"), &builder.SourceOuter{Inner: first})

	other := builder.New()
	other.Sources.Set(identity.NewComponentKey("in"), &builder.SourceOuter{Inner: second})

	errs := b.Append(other)
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate source id found: in", errs[0].Error())

	kept, _ := b.Sources.Get(identity.NewComponentKey("in"))
	assert.Equal(t, first, kept.Inner)
}

// TestAppend_AssociativeWithoutCollisions exercises (a+b)+c == a+(b+c) for
// three disjoint fragments: folding in either grouping produces the same
// final set of component keys.
func TestAppend_AssociativeWithoutCollisions(t *testing.T) {
	fragment := func(name string) *builder.Builder {
		b := builder.New()
		b.Sources.Set(identity.NewComponentKey(name), &builder.SourceOuter{Inner: stubCapability{"demo"}})
		return b
	}
	a, b2, c := fragment("a"), fragment("b"), fragment("c")

	left := builder.New()
	require.Empty(t, left.Append(a))
	require.Empty(t, left.Append(b2))
	require.Empty(t, left.Append(c))

	bc := builder.New()
	require.Empty(t, bc.Append(b2))
	require.Empty(t, bc.Append(c))
	right := builder.New()
	require.Empty(t, right.Append(a))
	require.Empty(t, right.Append(bc))

	assert.ElementsMatch(t, left.AllComponentKeys(), right.AllComponentKeys())
}

// TestAppend_CollisionSetEqualsPairwiseUnion checks that when two of three
// fragments collide, the reported collision is exactly the same regardless
// of which grouping order they're folded in.
func TestAppend_CollisionSetEqualsPairwiseUnion(t *testing.T) {
	fragment := func(name string) *builder.Builder {
		b := builder.New()
		b.Sources.Set(identity.NewComponentKey(name), &builder.SourceOuter{Inner: stubCapability{"demo"}})
		return b
	}
	a, bDup, c := fragment("shared"), fragment("shared"), fragment("c")

	left := builder.New()
	require.Empty(t, left.Append(a))
	leftErrs := left.Append(bDup)
	leftErrs = append(leftErrs, left.Append(c)...)

	right := builder.New()
	require.Empty(t, right.Append(a))
	bc := builder.New()
	require.Empty(t, bc.Append(bDup))
	require.Empty(t, bc.Append(c))
	rightErrs := right.Append(bc)

	require.Len(t, leftErrs, 1)
	require.Len(t, rightErrs, 1)
	assert.Equal(t, leftErrs[0].Error(), rightErrs[0].Error())
}

func TestAllComponentKeys_ExcludesSecrets(t *testing.T) {
	b := builder.New()
	b.Sources.Set(identity.NewComponentKey("in"), &builder.SourceOuter{Inner: stubCapability{"demo"}})
	b.Secrets.Set(identity.NewComponentKey("sec"), &builder.SecretOuter{Inner: stubCapability{"demo"}})

	keys := b.AllComponentKeys()
	require.Len(t, keys, 1)
	assert.Equal(t, "in", keys[0].String())
}
