package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/cmdutil"
	"github.com/opmodel/topology/internal/compiler"
	"github.com/opmodel/topology/internal/errdetail"
	"github.com/opmodel/topology/internal/logschema"
	"github.com/opmodel/topology/internal/output"
)

func newCompileCmd() *cobra.Command {
	var flags cmdutil.ConfigFlags

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Load, expand, and validate a pipeline topology configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, &flags)
		},
	}
	flags.AddTo(cmd)
	return cmd
}

// runCompile loads every configured fragment, runs the compiler, applies
// --require-healthy, and reports diagnostics. It returns a sentinel-wrapped
// error on failure so cmdutil.Exit maps it to the right process exit code.
func runCompile(cmd *cobra.Command, flags *cmdutil.ConfigFlags) error {
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

	if b.Globals.Schema != nil {
		// denyIfSet is false: a library embedder driving multiple compiles
		// in one process is expected to seed this more than once.
		_ = logschema.Init(logschema.FromOptions(b.Globals.Schema), false)
	}

	cfg, warnings, compileErrs := compiler.Compile(b)
	if len(compileErrs) > 0 {
		cmdutil.PrintCompileErrors(compileErrs)
		return errdetail.ErrConfig
	}

	if flags.RequireHealthy {
		cfg.SetRequireHealthy(true)
	}
	if cfg.Globals.Healthchecks.RequireHealthy && !anySinkHealthchecked(cfg) {
		return fmt.Errorf("%w: healthchecks.require_healthy is set but no sink has healthchecks enabled", errdetail.ErrConfig)
	}

	if flags.Verbose {
		cmdutil.PrintWarnings(warnings)
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("compiled %d sources, %d transforms, %d sinks (hash %s)",
		cfg.Sources.Len(), cfg.Transforms.Len(), cfg.Sinks.Len(), cfg.Hash)))
	return nil
}

func anySinkHealthchecked(cfg *builder.Config) bool {
	for _, sink := range cfg.Sinks.Values() {
		if sink.Healthcheck.Enabled {
			return true
		}
	}
	return false
}
