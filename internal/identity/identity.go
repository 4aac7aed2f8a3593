package identity

import "github.com/google/uuid"

// FragmentNamespace is the UUID v5 namespace used to derive a stable
// fragment id from a configuration source path (§6 "Persisted state" wants
// fragment provenance in diagnostics without leaking filesystem layout into
// the canonical hash). Computed once as uuid.NewSHA1(uuid.NameSpaceURL,
// []byte("topology.opmodel.dev/fragment")).
var FragmentNamespace = uuid.MustParse("74269f50-9e03-55d8-bee9-6a5f16bac164")

// FragmentID derives a deterministic id for a parsed configuration fragment
// from its source path, so the same file always yields the same id across
// runs regardless of load order.
func FragmentID(sourcePath string) uuid.UUID {
	return uuid.NewSHA1(FragmentNamespace, []byte(sourcePath))
}
