package testutil

import (
	"fmt"
	"strings"
)

// quoteAll wraps every element of ss in double quotes for embedding in a
// TOML array literal.
func quoteAll(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

// SourceFragment renders a minimal `[sources.<name>]` TOML section
// declaring typ and outputTypes, for tests that only care about a
// source's presence and output type set.
func SourceFragment(name, typ string, outputTypes []string) string {
	return fmt.Sprintf("[sources.%s]\ntype = %q\noutput_types = [%s]\n", name, typ, quoteAll(outputTypes))
}

// TransformFragment renders a minimal `[transforms.<name>]` TOML section
// with a single `inputs` list.
func TransformFragment(name, typ string, inputs []string) string {
	return fmt.Sprintf("[transforms.%s]\ntype = %q\ninputs = [%s]\n", name, typ, quoteAll(inputs))
}

// SinkFragment renders a minimal `[sinks.<name>]` TOML section with a
// single `inputs` list.
func SinkFragment(name, typ string, inputs []string) string {
	return fmt.Sprintf("[sinks.%s]\ntype = %q\ninputs = [%s]\n", name, typ, quoteAll(inputs))
}
