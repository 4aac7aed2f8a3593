// Package secret implements the SECRET[backend.key] marker pass: a
// single-pass, regex-driven substitution over raw fragment bytes, run
// alongside internal/envsubst before a fragment is parsed. Resolving the
// actual backend is an external collaborator's job (§Non-goals,
// secret-backend plugins); this package only detects markers and dispatches
// them to whichever Resolver the caller registered for that backend name.
package secret

import (
	"fmt"
	"regexp"
)

// marker matches SECRET[backend.key], capturing backend and key. The backend
// may not contain '.' or ']' (the first '.' ends it); the key may not
// contain ']' but may contain '.'.
var marker = regexp.MustCompile(`SECRET\[([^.\]]+)\.([^\]]+)\]`)

// Resolver looks up one secret value by key from a single backend. Concrete
// backends (Vault, AWS Secrets Manager, a local keyring, ...) are external
// collaborators; this package never implements one itself.
type Resolver interface {
	Resolve(key string) (string, error)
}

// Backends maps a backend name, as it appears in "SECRET[backend.key]", to
// the Resolver that serves it.
type Backends map[string]Resolver

// Error reports a marker that could not be resolved: either its backend
// name has no registered Resolver, or the Resolver itself failed.
type Error struct {
	Backend string
	Key     string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("secret %q.%q: %s", e.Backend, e.Key, e.Reason)
}

// Resolve replaces every SECRET[backend.key] marker in data with the value
// its registered backend resolves it to. A marker naming an unregistered
// backend, or one whose Resolver returns an error, is left in place in the
// output and accumulates an Error; resolution of the remaining markers
// continues regardless, matching envsubst's best-effort style.
func Resolve(data []byte, backends Backends) ([]byte, []error) {
	var errs []error

	out := marker.ReplaceAllFunc(data, func(m []byte) []byte {
		sub := marker.FindSubmatch(m)
		backend, key := string(sub[1]), string(sub[2])

		resolver, ok := backends[backend]
		if !ok {
			errs = append(errs, &Error{Backend: backend, Key: key, Reason: "no resolver registered for this backend"})
			return m
		}

		value, err := resolver.Resolve(key)
		if err != nil {
			errs = append(errs, &Error{Backend: backend, Key: key, Reason: err.Error()})
			return m
		}
		return []byte(value)
	})

	return out, errs
}

// HasMarkers reports whether data contains at least one SECRET[...] marker,
// letting a caller skip the resolution pass entirely for fragments that
// never reference secrets.
func HasMarkers(data []byte) bool {
	return marker.Match(data)
}
