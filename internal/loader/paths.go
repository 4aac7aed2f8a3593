// Package loader discovers, reads, variable-substitutes, and parses
// configuration fragments, folding them into a single builder.Builder
// before the compiler runs.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/opmodel/topology/internal/format"
)

// ProcessPaths expands directories in paths into sorted, regular-file
// lists filtered by recognized extension, leaving plain file paths as-is.
// It errors on any path that can't be read.
func ProcessPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		var files []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if format.HintFromPath(path) == format.Unknown {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}

// MergePaths concatenates a and b, preserving order, de-duplicating by
// canonical (cleaned, absolute) path so the same file listed twice (e.g.
// once directly and once via directory expansion) is only loaded once.
func MergePaths(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	add := func(paths []string) {
		for _, p := range paths {
			canon, err := filepath.Abs(filepath.Clean(p))
			if err != nil {
				canon = filepath.Clean(p)
			}
			if seen[canon] {
				continue
			}
			seen[canon] = true
			out = append(out, p)
		}
	}
	add(a)
	add(b)
	return out
}
