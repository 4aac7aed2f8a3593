package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/topology/internal/cmdutil"
	"github.com/opmodel/topology/internal/compiler"
	"github.com/opmodel/topology/internal/errdetail"
	"github.com/opmodel/topology/internal/output"
)

func newHashCmd() *cobra.Command {
	var flags cmdutil.ConfigFlags

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the compiled configuration's deterministic hash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHash(cmd, &flags)
		},
	}
	flags.AddTo(cmd)
	return cmd
}

func runHash(cmd *cobra.Command, flags *cmdutil.ConfigFlags) error {
	output.SetupLogging(output.LogConfig{Verbose: flags.Verbose})

	if err := flags.Validate(); err != nil {
		return fmt.Errorf("%w: %s", errdetail.ErrConfig, err)
	}
	resolved, err := flags.Resolve()
	if err != nil {
		return fmt.Errorf("%w: resolving configuration paths: %s", errdetail.ErrConfig, err)
	}

	b, loadErrs := loadBuilder(cmd.Context(), resolved)
	if len(loadErrs) > 0 {
		cmdutil.PrintCompileErrors(loadErrs)
		return errdetail.ErrConfig
	}

	cfg, _, compileErrs := compiler.Compile(b)
	if len(compileErrs) > 0 {
		cmdutil.PrintCompileErrors(compileErrs)
		return errdetail.ErrConfig
	}

	fmt.Fprintln(cmd.OutOrStdout(), cfg.Hash)
	return nil
}
