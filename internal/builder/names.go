package builder

import (
	"fmt"
	"strings"

	"github.com/opmodel/topology/internal/identity"
	"github.com/opmodel/topology/internal/ordered"
)

// DuplicateNameError reports a component name reused across different kinds
// (sources/transforms/sinks all share one name namespace even though the
// Builder keeps them in separate maps — see §3 invariant 1).
type DuplicateNameError struct {
	Name  string
	Kinds []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("More than one component with name %q (%s).", e.Name, strings.Join(e.Kinds, ", "))
}

// CheckUniqueNames reports every component name that appears in more than
// one of sources/transforms/sinks/enrichment tables, since the Builder
// stores each kind in its own map and so cannot detect the collision on
// insert the way appendNamespace does within a single kind.
func (b *Builder) CheckUniqueNames() []error {
	kindsByName := ordered.NewMap[string, []string]()
	record := func(key identity.ComponentKey, kind string) {
		name := key.String()
		existing, _ := kindsByName.Get(name)
		kindsByName.Set(name, append(existing, kind))
	}

	b.Sources.Range(func(k identity.ComponentKey, _ *SourceOuter) bool { record(k, "source"); return true })
	b.Transforms.Range(func(k identity.ComponentKey, _ *TransformOuter) bool { record(k, "transform"); return true })
	b.Sinks.Range(func(k identity.ComponentKey, _ *SinkOuter) bool { record(k, "sink"); return true })
	b.EnrichmentTables.Range(func(k identity.ComponentKey, _ *EnrichmentTableOuter) bool {
		record(k, "enrichment table")
		return true
	})

	var errs []error
	kindsByName.Range(func(name string, kinds []string) bool {
		if len(kinds) > 1 {
			errs = append(errs, &DuplicateNameError{Name: name, Kinds: kinds})
		}
		return true
	})
	return errs
}
