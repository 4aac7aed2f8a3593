package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigFile returns ~/.opctl/config.yaml, the conventional location
// of opctl's own configuration file. Load does not consult it; it reads only
// the path it is given.
func DefaultConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".opctl", "config.yaml"), nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
