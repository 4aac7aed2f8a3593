package main

import "github.com/spf13/cobra"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and format opctl's own configuration and pipeline fragments",
	}
	cmd.AddCommand(newConfigFmtCmd())
	cmd.AddCommand(newConfigVetCmd())
	return cmd
}
