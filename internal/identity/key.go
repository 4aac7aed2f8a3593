// Package identity defines component keys and output identifiers, the
// addressing scheme the rest of the compiler uses to refer to sources,
// transforms, sinks, and their individual output streams.
package identity

import (
	"fmt"
	"strings"
)

// reservedChars may not appear in a bare component name parsed outside of
// a structured (already-split scope/name) context.
const reservedChars = ".*"

// ErrReservedName is returned when a parsed component name contains a
// character reserved for scope separation (".") or wildcard matching ("*").
type ErrReservedName struct {
	Name string
}

func (e *ErrReservedName) Error() string {
	return fmt.Sprintf("component name %q contains a reserved character (one of %q)", e.Name, reservedChars)
}

// ComponentKey identifies a component within a topology. Scope is non-empty
// only for components synthesized by expansion (internal/expand); it names
// the logical component the physical component was expanded from.
//
// Equality and ordering are defined on the canonical string form, never on
// the struct fields directly, so two keys built through different call
// paths compare equal iff they print identically.
type ComponentKey struct {
	Scope string
	Name  string
}

// NewComponentKey returns an unscoped key.
func NewComponentKey(name string) ComponentKey {
	return ComponentKey{Name: name}
}

// JoinComponentKey returns a key scoped under an expansion parent, rendering
// as "scope.name".
func JoinComponentKey(scope, name string) ComponentKey {
	return ComponentKey{Scope: scope, Name: name}
}

// ParseComponentKey parses a bare, unscoped component name, rejecting
// reserved characters. Use JoinComponentKey directly when scope and name are
// already known structurally (e.g. during expansion).
func ParseComponentKey(name string) (ComponentKey, error) {
	if strings.ContainsAny(name, reservedChars) {
		return ComponentKey{}, &ErrReservedName{Name: name}
	}
	return NewComponentKey(name), nil
}

// String renders the canonical form: "scope.name" when scoped, else "name".
func (k ComponentKey) String() string {
	if k.Scope == "" {
		return k.Name
	}
	return k.Scope + "." + k.Name
}

// Equal reports whether two keys have the same canonical form.
func (k ComponentKey) Equal(other ComponentKey) bool {
	return k.String() == other.String()
}

// Less orders keys lexicographically on their canonical form, giving a
// stable, deterministic iteration order for diagnostics.
func (k ComponentKey) Less(other ComponentKey) bool {
	return k.String() < other.String()
}

// IsZero reports whether k is the zero value (used as a "no key" sentinel
// in a handful of error paths that predate expansion).
func (k ComponentKey) IsZero() bool {
	return k.Scope == "" && k.Name == ""
}
