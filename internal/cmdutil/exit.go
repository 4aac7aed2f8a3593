package cmdutil

import (
	"errors"
	"os"

	"github.com/opmodel/topology/internal/errdetail"
)

// Exit codes, per sysexits.h.
const (
	ExitSuccess  = 0
	ExitUsage    = 64 // EX_USAGE: command invoked with the wrong arguments
	ExitSoftware = 70 // EX_SOFTWARE: an internal error unrelated to user input
	ExitConfig   = 78 // EX_CONFIG: configuration was loaded but rejected
)

// ExitCodeFromError maps an error to the process exit code opctl should
// use, via the errdetail sentinel the error wraps.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, errdetail.ErrConfig):
		return ExitConfig
	case errors.Is(err, errdetail.ErrInternal):
		return ExitSoftware
	default:
		return ExitSoftware
	}
}

// Exit terminates the process with the exit code appropriate for err.
func Exit(err error) {
	os.Exit(ExitCodeFromError(err))
}
