package loader

import "context"

// RemoteProvider fetches a synthetic configuration fragment before any
// local file is read, and it is merged first (vector's src/config/mod.rs
// ProviderConfig pattern): global values a local fragment sets override the
// remote ones, while a local component whose name the remote fragment
// already declares is reported as a duplicate and the remote one is kept. The
// default NoopProvider returns no data and is used when no remote source
// is configured.
type RemoteProvider interface {
	// Fetch returns raw fragment bytes plus the Hint to parse them with,
	// or ok=false if the provider has nothing to contribute.
	Fetch(ctx context.Context) (data []byte, hintName string, ok bool, err error)
}

// NoopProvider is the zero-configuration RemoteProvider.
type NoopProvider struct{}

// Fetch always reports nothing to contribute.
func (NoopProvider) Fetch(ctx context.Context) ([]byte, string, bool, error) {
	return nil, "", false, nil
}
