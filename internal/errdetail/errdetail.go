// Package errdetail renders compiler diagnostics at the CLI boundary:
// internal phase errors (which implement CompileError) are wrapped in a
// structured DetailError carrying the Error:/Location:/Hint: block format,
// while everything else falls back to a plain message.
package errdetail

import (
	"errors"
	"strings"
)

// Sentinel errors identifying broad diagnostic categories.
var (
	// ErrConfig indicates a configuration-load or compile failure.
	ErrConfig = errors.New("configuration error")

	// ErrInternal indicates a failure not attributable to user configuration.
	ErrInternal = errors.New("internal error")
)

// CompileError is implemented by every error type the compiler's phases
// produce, letting the CLI boundary attribute a diagnostic to a phase and
// component without the phases themselves depending on errdetail.
type CompileError interface {
	error
	Phase() string
	Component() string
}

// DetailError captures structured diagnostic information for CLI-boundary
// rendering: Error:/Location:/Hint: blocks, one entry per failure.
type DetailError struct {
	Type     string
	Message  string
	Location string
	Hint     string
	Cause    error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")
	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")
	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}
	return b.String()
}

// Unwrap returns the underlying sentinel, if any.
func (e *DetailError) Unwrap() error { return e.Cause }

// FromCompileError wraps a phase error into a DetailError, using its Phase
// and Component for the Location and a generic hint pointing at the phase.
func FromCompileError(err CompileError) *DetailError {
	location := err.Phase()
	if err.Component() != "" {
		location = err.Phase() + ": " + err.Component()
	}
	return &DetailError{
		Type:     "compilation failed",
		Message:  err.Error(),
		Location: location,
		Hint:     "run `opctl config vet` for the full diagnostic list",
		Cause:    ErrConfig,
	}
}

// Render turns any error into its CLI-boundary display string: a
// DetailError block for CompileError, or the plain message otherwise.
func Render(err error) string {
	var ce CompileError
	if errors.As(err, &ce) {
		return FromCompileError(ce).Error()
	}
	return "Error: " + err.Error()
}
