package main

import (
	"context"
	"fmt"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/cmdutil"
	"github.com/opmodel/topology/internal/loader"
	"github.com/opmodel/topology/internal/output"
	"github.com/opmodel/topology/internal/registry"
	"github.com/opmodel/topology/internal/secret"
)

// loadBuilder resolves f's paths, reads and folds every fragment into a
// single Builder under a spinner (fragments may be slow to read, and
// loader.Load is also where a configured RemoteProvider would be
// contacted), and returns the folded Builder plus any load-time errors.
func loadBuilder(ctx context.Context, f *cmdutil.ResolvedPaths) (*builder.Builder, []error) {
	l := loader.New(registry.New())
	l.HintOverride = f.HintOverride
	l.Secrets = secret.Backends{"env": secret.EnvResolver{}}

	var out *builder.Builder
	var errs []error
	err := output.RunWithSpinner(ctx, "loading configuration", func() error {
		out, errs = l.Load(ctx, f.Files)
		return nil
	})
	if err != nil {
		return nil, []error{fmt.Errorf("loading configuration: %w", err)}
	}
	return out, errs
}
