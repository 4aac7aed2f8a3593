// Package cmdutil provides shared command utilities for opctl subcommands.
// It centralizes flag group management, diagnostic rendering, and process
// exit-code mapping.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/topology/internal/format"
	"github.com/opmodel/topology/internal/loader"
)

// ConfigFlags holds flags common to every command that loads a topology
// configuration (compile, graph, hash, config vet).
type ConfigFlags struct {
	Paths          []string
	PathsDirs      []string
	PathsTOML      []string
	PathsYAML      []string
	PathsJSON      []string
	RequireHealthy bool
	Verbose        bool
}

// AddTo registers the configuration flags on the given cobra command. The
// path flags are repeatable and format-tagged independently, then merged by
// internal/loader in the order they were declared.
func (f *ConfigFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.Paths, "config", nil,
		"Configuration file or directory, format inferred from extension (can be repeated)")
	cmd.Flags().StringArrayVar(&f.PathsDirs, "config-dir", nil,
		"Directory of configuration files, format inferred per file (can be repeated)")
	cmd.Flags().StringArrayVar(&f.PathsTOML, "config-toml", nil,
		"TOML configuration file, regardless of extension (can be repeated)")
	cmd.Flags().StringArrayVar(&f.PathsYAML, "config-yaml", nil,
		"YAML configuration file, regardless of extension (can be repeated)")
	cmd.Flags().StringArrayVar(&f.PathsJSON, "config-json", nil,
		"JSON configuration file, regardless of extension (can be repeated)")
	cmd.Flags().BoolVar(&f.RequireHealthy, "require-healthy", false,
		"Fail the command if healthchecks.require_healthy resolves true and no sink has healthchecks enabled")
	cmd.Flags().BoolVarP(&f.Verbose, "verbose", "v", false,
		"Print warnings and phase-by-phase diagnostics in addition to errors")
}

// Validate checks that at least one configuration source was given.
func (f *ConfigFlags) Validate() error {
	if len(f.Paths) == 0 && len(f.PathsDirs) == 0 && len(f.PathsTOML) == 0 && len(f.PathsYAML) == 0 && len(f.PathsJSON) == 0 {
		return fmt.Errorf("at least one of --config, --config-dir, --config-toml, --config-yaml, or --config-json is required")
	}
	return nil
}

// ResolvedPaths is the file list a Loader should read, plus the per-path
// format overrides for files pinned by --config-toml/--config-yaml/--config-json.
type ResolvedPaths struct {
	Files        []string
	HintOverride map[string]format.Hint
}

// Resolve expands --config/--config-dir into a sorted file list (directories
// are walked, extensions decide format) and appends the three format-pinned
// flags verbatim with their format forced, in declaration order: --config,
// then --config-dir, then --config-toml, --config-yaml, --config-json.
func (f *ConfigFlags) Resolve() (*ResolvedPaths, error) {
	expanded, err := loader.ProcessPaths(append(append([]string{}, f.Paths...), f.PathsDirs...))
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]format.Hint)
	pinned := func(paths []string, hint format.Hint) {
		for _, p := range paths {
			overrides[p] = hint
		}
	}
	pinned(f.PathsTOML, format.TOML)
	pinned(f.PathsYAML, format.YAML)
	pinned(f.PathsJSON, format.JSON)

	files := append(expanded, f.PathsTOML...)
	files = append(files, f.PathsYAML...)
	files = append(files, f.PathsJSON...)

	return &ResolvedPaths{Files: loader.MergePaths(files, nil), HintOverride: overrides}, nil
}
