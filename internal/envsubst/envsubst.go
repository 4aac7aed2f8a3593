// Package envsubst implements the pre-parse variable-substitution pass
// described in SPEC_FULL.md's "variable substitution" module: a one-pass,
// non-recursive expansion of ${NAME}, ${NAME-default}, ${NAME:-default},
// and $$ over raw configuration bytes, before any format parsing happens.
package envsubst

import (
	"fmt"
	"strings"
)

// Lookup resolves an environment variable name to its value. It mirrors the
// shape of os.LookupEnv so a caller can pass that directly, but the
// substitution pass never reads the process environment itself — it is
// always handed a caller-supplied snapshot (the EnvProvider capability from
// SPEC_FULL.md §6).
type Lookup func(name string) (string, bool)

// VariableError reports a reference to an undefined variable with no
// default form.
type VariableError struct {
	Name string
}

func (e *VariableError) Error() string {
	return fmt.Sprintf("undefined variable %q referenced without a default value", e.Name)
}

// Substitute performs the one-pass expansion described above. It never
// recurses into the text a substitution produces, so a default value or
// resolved variable containing "${...}" is emitted verbatim.
func Substitute(data []byte, lookup Lookup) ([]byte, []error) {
	var out strings.Builder
	var errs []error

	s := string(data)
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '$' && i+1 < len(s) && s[i+1] == '$' {
			out.WriteByte('$')
			i += 2
			continue
		}
		if c == '$' && i+1 < len(s) && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				// No closing brace: pass the rest through literally, same as
				// the reference implementation's lenient fallback.
				out.WriteString(s[i:])
				break
			}
			expr := s[i+2 : i+2+end]
			value, verr := resolve(expr, lookup)
			if verr != nil {
				errs = append(errs, verr)
			} else {
				out.WriteString(value)
			}
			i += 2 + end + 1
			continue
		}
		out.WriteByte(c)
		i++
	}

	return []byte(out.String()), errs
}

// resolve interprets one "${...}" body: NAME, NAME-default, or NAME:-default.
//
// "-default" substitutes only when NAME is unset; "empty" ("" set in the
// environment) passes through. ":-default" additionally substitutes when
// NAME is set but empty, matching shell parameter-expansion semantics.
func resolve(expr string, lookup Lookup) (string, error) {
	name, def, hasDefault, emptyCounts := splitDefault(expr)

	val, ok := lookup(name)
	if !ok {
		if hasDefault {
			return def, nil
		}
		return "", &VariableError{Name: name}
	}
	if emptyCounts && val == "" {
		return def, nil
	}
	return val, nil
}

// splitDefault splits "NAME", "NAME-default", or "NAME:-default" into the
// variable name and its default (if any). emptyCounts is true for the ":-"
// form, where an empty-but-set variable also falls back to the default.
func splitDefault(expr string) (name, def string, hasDefault, emptyCounts bool) {
	if idx := strings.Index(expr, ":-"); idx >= 0 {
		return expr[:idx], expr[idx+2:], true, true
	}
	if idx := strings.Index(expr, "-"); idx >= 0 {
		return expr[:idx], expr[idx+1:], true, false
	}
	return expr, "", false, false
}
