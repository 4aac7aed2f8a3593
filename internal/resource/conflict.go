package resource

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/opmodel/topology/internal/identity"
)

// Claim pairs a component with the resources it declares.
type Claim struct {
	Key       identity.ComponentKey
	Resources []Resource
}

// ConflictError reports that two or more components claim the same
// resource. It is returned sorted by resource display string so repeated
// runs on identical input produce byte-identical diagnostics.
type ConflictError struct {
	Resource  Resource
	Claimants []identity.ComponentKey
}

func (e *ConflictError) Error() string {
	names := make([]string, len(e.Claimants))
	for i, k := range e.Claimants {
		names[i] = k.String()
	}
	return fmt.Sprintf("Resource `%s` is claimed by multiple components: %s", e.Resource, strings.Join(names, ", "))
}

// Conflicts implements the arbiter algorithm from SPEC_FULL.md's resource
// module:
//
//  1. Record every (resource, key) claim.
//  2. For every wildcard-interface Port claim, union its claimant into
//     every other Port claim sharing the same (port, proto) regardless of
//     interface — a wildcard bind conflicts with every specific interface
//     on that port.
//  3. Retain only resources with two or more distinct claimants.
//
// The result is order-independent: claims may be supplied in any order and
// the same conflict set is produced (P4 in SPEC_FULL.md).
func Conflicts(claims []Claim) map[Resource][]identity.ComponentKey {
	claimants := make(map[Resource]sets.Set[identity.ComponentKey])
	byPortKey := make(map[portKey][]Resource)
	var wildcards []Resource

	addClaim := func(r Resource, key identity.ComponentKey) {
		set, ok := claimants[r]
		if !ok {
			set = sets.New[identity.ComponentKey]()
			claimants[r] = set
		}
		set.Insert(key)
	}

	for _, c := range claims {
		for _, r := range c.Resources {
			addClaim(r, c.Key)
			if r.Kind == KindPort {
				byPortKey[r.portKey()] = append(byPortKey[r.portKey()], r)
				if r.IsWildcard() {
					wildcards = append(wildcards, r)
				}
			}
		}
	}

	// Wildcard propagation: the wildcard's claimant set joins every other
	// port claim sharing (port, proto), so a specific interface bound by
	// component A and a wildcard bound by component B are both listed on A's
	// entry. The wildcard's own entry gains no claimants from specific
	// interfaces.
	for _, w := range wildcards {
		for _, sibling := range byPortKey[w.portKey()] {
			if sibling == w {
				continue
			}
			for k := range claimants[w] {
				claimants[sibling].Insert(k)
			}
		}
	}

	out := make(map[Resource][]identity.ComponentKey)
	for r, set := range claimants {
		if set.Len() < 2 {
			continue
		}
		keys := set.UnsortedList()
		identity.SortComponentKeys(keys)
		out[r] = keys
	}
	return out
}

// ConflictErrors converts the map returned by Conflicts into a deterministic,
// sorted list of ConflictError values.
func ConflictErrors(conflicts map[Resource][]identity.ComponentKey) []error {
	type entry struct {
		r Resource
		k []identity.ComponentKey
	}
	entries := make([]entry, 0, len(conflicts))
	for r, k := range conflicts {
		entries = append(entries, entry{r: r, k: k})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].r.String() < entries[j].r.String() })

	errs := make([]error, 0, len(entries))
	for _, e := range entries {
		errs = append(errs, &ConflictError{Resource: e.r, Claimants: e.k})
	}
	return errs
}
