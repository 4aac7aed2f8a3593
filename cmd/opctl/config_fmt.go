package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opmodel/topology/internal/errdetail"
	"github.com/opmodel/topology/internal/format"
)

func newConfigFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <fragment.yaml>",
		Short: "Canonicalize a YAML fragment's section and component ordering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigFmt(cmd, args[0], write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file instead of printing it")
	return cmd
}

func runConfigFmt(cmd *cobra.Command, path string, write bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %s", errdetail.ErrConfig, path, err)
	}

	formatted, err := format.CanonicalizeYAML(data, 2)
	if err != nil {
		return fmt.Errorf("%w: formatting %s: %s", errdetail.ErrConfig, path, err)
	}

	if write {
		if err := os.WriteFile(path, formatted, 0o644); err != nil {
			return fmt.Errorf("%w: writing %s: %s", errdetail.ErrInternal, path, err)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(formatted)
	return err
}
