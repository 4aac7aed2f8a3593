package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  ComponentKey
		want string
	}{
		{name: "unscoped", key: NewComponentKey("in"), want: "in"},
		{name: "scoped", key: JoinComponentKey("parse3", "p1"), want: "parse3.p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}

func TestComponentKey_Equal(t *testing.T) {
	a := JoinComponentKey("scope", "name")
	b := ComponentKey{Scope: "scope", Name: "name"}
	assert.True(t, a.Equal(b))

	c := NewComponentKey("scope.name")
	assert.True(t, a.Equal(c), "canonical form equality ignores how the key was constructed")
}

func TestComponentKey_Less(t *testing.T) {
	keys := []ComponentKey{
		NewComponentKey("zz"),
		NewComponentKey("aa"),
		JoinComponentKey("mid", "dle"),
	}
	SortComponentKeys(keys)
	require.Len(t, keys, 3)
	assert.Equal(t, "aa", keys[0].String())
	assert.Equal(t, "mid.dle", keys[1].String())
	assert.Equal(t, "zz", keys[2].String())
}

func TestParseComponentKey_Reserved(t *testing.T) {
	_, err := ParseComponentKey("foo.bar")
	require.Error(t, err)
	var reservedErr *ErrReservedName
	require.ErrorAs(t, err, &reservedErr)

	_, err = ParseComponentKey("foo*")
	require.Error(t, err)

	k, err := ParseComponentKey("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", k.String())
}
