package identity

import (
	"sort"
	"strings"
)

// DefaultOutput is the sentinel output name for a component's primary,
// unnamed output stream.
const DefaultOutput = ""

// OutputID addresses a single stream emitted by a component. A source or
// transform with multiple named outputs (e.g. a "parse" transform with a
// "dropped" error output) is addressed as ComponentKey plus Port.
type OutputID struct {
	Key  ComponentKey
	Port string
}

// NewOutputID returns the default-output id for a component.
func NewOutputID(key ComponentKey) OutputID {
	return OutputID{Key: key}
}

// NewNamedOutputID returns a named-port output id for a component.
func NewNamedOutputID(key ComponentKey, port string) OutputID {
	return OutputID{Key: key, Port: port}
}

// String renders the wire form: "name" for the default output, "name.port"
// otherwise. Round-trips through ParseOutputID.
func (o OutputID) String() string {
	if o.Port == DefaultOutput {
		return o.Key.String()
	}
	return o.Key.String() + "." + o.Port
}

// Equal reports whether two output ids refer to the same stream.
func (o OutputID) Equal(other OutputID) bool {
	return o.String() == other.String()
}

// Less orders output ids lexicographically on their wire form.
func (o OutputID) Less(other OutputID) bool {
	return o.String() < other.String()
}

// ParseOutputID is a pure syntactic split of a reference string into a base
// component reference and an optional port, splitting on the last ".". It
// does not know which components exist, so it cannot itself disambiguate a
// dotted component name from a "component.port" reference — that resolution
// happens against the graph's input map (internal/graph), which tries the
// whole string as a component name first and only then as base+port.
func ParseOutputID(ref string) (base, port string, hasPort bool) {
	idx := strings.LastIndex(ref, ".")
	if idx < 0 {
		return ref, "", false
	}
	return ref[:idx], ref[idx+1:], true
}

// SortComponentKeys sorts keys in place by canonical form.
func SortComponentKeys(keys []ComponentKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

// SortOutputIDs sorts output ids in place by wire form.
func SortOutputIDs(ids []OutputID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}
