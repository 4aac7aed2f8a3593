package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/topology/internal/cmdutil"
	"github.com/opmodel/topology/internal/compiler"
	"github.com/opmodel/topology/internal/errdetail"
	"github.com/opmodel/topology/internal/output"
)

func newConfigVetCmd() *cobra.Command {
	var flags cmdutil.ConfigFlags

	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Check that a pipeline topology configuration loads, expands, and validates cleanly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigVet(cmd, &flags)
		},
	}
	flags.AddTo(cmd)
	return cmd
}

func runConfigVet(cmd *cobra.Command, flags *cmdutil.ConfigFlags) error {
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
	output.Println(output.FormatVetCheck("fragments loaded", fmt.Sprintf("%d file(s)", len(resolved.Files))))

	cfg, warnings, compileErrs := compiler.Compile(b)
	if len(compileErrs) > 0 {
		cmdutil.PrintCompileErrors(compileErrs)
		return errdetail.ErrConfig
	}
	output.Println(output.FormatVetCheck("topology compiled", fmt.Sprintf("hash %s", cfg.Hash)))

	if len(warnings) > 0 {
		cmdutil.PrintWarnings(warnings)
		output.Println(output.FormatVetCheck("no blocking errors", fmt.Sprintf("%d warning(s)", len(warnings))))
		return nil
	}

	output.Println(output.FormatVetCheck("no errors or warnings", ""))
	return nil
}
