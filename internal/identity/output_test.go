package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputID_String(t *testing.T) {
	key := NewComponentKey("parse")
	assert.Equal(t, "parse", NewOutputID(key).String())
	assert.Equal(t, "parse.dropped", NewNamedOutputID(key, "dropped").String())
}

func TestParseOutputID(t *testing.T) {
	tests := []struct {
		ref      string
		wantBase string
		wantPort string
		wantHas  bool
	}{
		{ref: "in", wantBase: "in", wantPort: "", wantHas: false},
		{ref: "parse.dropped", wantBase: "parse", wantPort: "dropped", wantHas: true},
		{ref: "scope.name.port", wantBase: "scope.name", wantPort: "port", wantHas: true},
	}
	for _, tt := range tests {
		base, port, hasPort := ParseOutputID(tt.ref)
		assert.Equal(t, tt.wantBase, base, tt.ref)
		assert.Equal(t, tt.wantPort, port, tt.ref)
		assert.Equal(t, tt.wantHas, hasPort, tt.ref)
	}
}

func TestOutputID_RoundTrip(t *testing.T) {
	id := NewNamedOutputID(JoinComponentKey("L", "P1"), "errors")
	s := id.String()
	base, port, hasPort := ParseOutputID(s)
	assert.True(t, hasPort)
	assert.Equal(t, "L.P1", base)
	assert.Equal(t, "errors", port)
}
