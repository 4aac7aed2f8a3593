package cmdutil

import (
	"github.com/opmodel/topology/internal/ack"
	"github.com/opmodel/topology/internal/compiler"
	"github.com/opmodel/topology/internal/errdetail"
	"github.com/opmodel/topology/internal/graph"
	"github.com/opmodel/topology/internal/output"
)

// PrintCompileErrors prints every error a failed compile accumulated, each
// rendered as an errdetail Error:/Location:/Hint: block.
func PrintCompileErrors(errs []error) {
	for _, err := range errs {
		output.Details(errdetail.Render(err))
	}
}

// PrintWarnings prints every warning a successful compile surfaced, one
// FormatDiagnostic line per warning.
func PrintWarnings(warnings []compiler.Warning) {
	for _, w := range warnings {
		output.Details(output.FormatDiagnostic(output.SeverityWarning, warningComponent(w), w.String()))
	}
}

// warningComponent extracts the component a warning concerns, best-effort,
// for FormatDiagnostic's cyan component highlight. Warning itself only
// guarantees String(), since it's implemented by three types from two
// packages (ack, graph).
func warningComponent(w compiler.Warning) string {
	switch w := w.(type) {
	case *ack.Warning:
		return w.Sink.String()
	case *graph.OrphanWarning:
		return w.Name
	case *graph.TypeWarning:
		return w.Consumer.String()
	default:
		return ""
	}
}
