package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/opmodel/topology/internal/cmdutil"
	"github.com/opmodel/topology/internal/compiler"
	"github.com/opmodel/topology/internal/errdetail"
	"github.com/opmodel/topology/internal/graph"
	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/output"
)

func newGraphCmd() *cobra.Command {
	var flags cmdutil.ConfigFlags

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the compiled dataflow graph as Graphviz DOT",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd, &flags)
		},
	}
	flags.AddTo(cmd)
	return cmd
}

func runGraph(cmd *cobra.Command, flags *cmdutil.ConfigFlags) error {
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

	fmt.Fprintln(cmd.OutOrStdout(), renderDOT(cfg.Graph))
	return nil
}

// renderDOT renders g as a Graphviz DOT digraph: one node per component,
// labeled with its kind, and one edge per producer-output-to-consumer
// dependency, sorted for deterministic output.
func renderDOT(g *graph.Graph) string {
	keys := append([]identity.ComponentKey{}, g.OrderedKeys()...)
	identity.SortComponentKeys(keys)

	out := "digraph topology {\n"
	for _, key := range keys {
		node := g.Nodes[key]
		out += fmt.Sprintf("  %q [label=%q];\n", key.String(), fmt.Sprintf("%s\\n%s", key.String(), node.Kind))
	}

	edges := make([]string, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = fmt.Sprintf("  %q -> %q;", e.From.String(), e.To.String())
	}
	sort.Strings(edges)
	for _, e := range edges {
		out += e + "\n"
	}
	out += "}"
	return out
}
