package main

import (
	"github.com/spf13/cobra"
)

var flagOpctlConfig string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "opctl",
		Short:         "Compile and inspect pipeline topology configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagOpctlConfig, "opctl-config", "",
		"Path to opctl's own configuration file (accepted but not read by any command)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCompileCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newHashCmd())
	root.AddCommand(newConfigCmd())

	return root
}
