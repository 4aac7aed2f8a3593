package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
)

// IsTTY reports whether stdout is attached to a terminal. Spinners render
// badly when piped, so callers fall back to running the action directly.
func IsTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// RunWithSpinner runs action under a spinner titled title while stdout is a
// terminal, or directly otherwise. Used while a remote ProviderConfig
// fetch or a slow local load is in flight, so the CLI doesn't sit silent.
func RunWithSpinner(ctx context.Context, title string, action func() error) error {
	if !IsTTY() {
		return action()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- action() }()

	s := spinner.New().Title(title)
	if err := s.Action(func() {
		select {
		case <-ctx.Done():
		case <-errCh:
		}
	}).Run(); err != nil {
		return fmt.Errorf("spinner: %w", err)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
