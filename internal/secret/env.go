package secret

import (
	"fmt"
	"os"
)

// EnvResolver resolves a secret key from an environment variable named
// Prefix+key, upper-cased by the caller's convention if desired. It exists
// mainly to exercise the marker pass in tests and local development without
// a real backend plugin wired in.
type EnvResolver struct {
	Prefix string
}

// Resolve implements Resolver.
func (r EnvResolver) Resolve(key string) (string, error) {
	name := r.Prefix + key
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("environment variable %q not set", name)
	}
	return value, nil
}
