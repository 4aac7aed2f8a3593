package loader

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/opmodel/topology/internal/builder"
	"github.com/opmodel/topology/internal/envsubst"
	"github.com/opmodel/topology/internal/format"
	"github.com/opmodel/topology/internal/secret"
)

// Loader reads, substitutes, and parses configuration fragments into a
// single folded Builder.
type Loader struct {
	Decoder  format.Decoder
	Provider RemoteProvider
	Lookup   envsubst.Lookup
	Secrets  secret.Backends

	// HintOverride forces a path to parse under a specific format
	// regardless of its extension, for callers that pin a file to
	// --config-toml/--config-yaml/--config-json rather than letting the
	// extension decide.
	HintOverride map[string]format.Hint
}

// New returns a Loader with OS environment lookup, no remote provider, and
// no secret backends registered (any SECRET[...] marker will accumulate an
// Error until the caller populates Secrets).
func New(dec format.Decoder) *Loader {
	return &Loader{
		Decoder:  dec,
		Provider: NoopProvider{},
		Lookup:   os.LookupEnv,
		Secrets:  secret.Backends{},
	}
}

// fragmentResult is one path's read-substitute-parse outcome, kept
// separate from folding so concurrent I/O never races on the accumulator.
type fragmentResult struct {
	path string
	frag *builder.Fragment
	err  error
}

// Load reads every path in order, substituting and parsing concurrently,
// then folds the results into a single Builder strictly in path order so
// collision precedence (first path wins) is deterministic regardless of
// how fast each file was read.
func (l *Loader) Load(ctx context.Context, paths []string) (*builder.Builder, []error) {
	out := builder.New()
	var errs []error

	if remote, hintName, ok, err := l.Provider.Fetch(ctx); err != nil {
		errs = append(errs, fmt.Errorf("remote provider: %w", err))
	} else if ok {
		resolved, secretErrs := secret.Resolve(remote, l.Secrets)
		for _, e := range secretErrs {
			errs = append(errs, fmt.Errorf("<remote>: %w", e))
		}
		frag, ferr := l.parseOne("<remote>", resolved, format.HintFromPath("x."+hintName))
		if ferr != nil {
			errs = append(errs, ferr)
		} else {
			errs = append(errs, out.Append(frag)...)
		}
	}

	results := make([]fragmentResult, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			data, err := os.ReadFile(p)
			if err != nil {
				results[i] = fragmentResult{path: p, err: fmt.Errorf("reading %s: %w", p, err)}
				return nil
			}
			substituted, subErrs := envsubst.Substitute(data, l.Lookup)
			if len(subErrs) > 0 {
				joined := make([]error, len(subErrs))
				for j, e := range subErrs {
					joined[j] = fmt.Errorf("%s: %w", p, e)
				}
				results[i] = fragmentResult{path: p, err: joinErrors(joined)}
				return nil
			}

			resolved, secretErrs := secret.Resolve(substituted, l.Secrets)
			if len(secretErrs) > 0 {
				joined := make([]error, len(secretErrs))
				for j, e := range secretErrs {
					joined[j] = fmt.Errorf("%s: %w", p, e)
				}
				results[i] = fragmentResult{path: p, err: joinErrors(joined)}
				return nil
			}

			hint := format.HintFromPath(p)
			if override, ok := l.HintOverride[p]; ok {
				hint = override
			}
			frag, err := l.parseOne(p, resolved, hint)
			results[i] = fragmentResult{path: p, frag: frag, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		errs = append(errs, out.Append(r.frag)...)
	}

	return out, errs
}

func (l *Loader) parseOne(path string, data []byte, hint format.Hint) (*builder.Fragment, error) {
	if hint == format.Unknown {
		return nil, &format.UnsupportedExtensionError{Path: path}
	}
	frag, err := format.Parse(data, hint, l.Decoder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frag, nil
}

// joinErrors wraps multiple errors behind one error value without pulling
// in errors.Join's Go-1.20 formatting quirks for multi-line messages; each
// substitution error already names its own variable.
func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
