package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Hint selects which decoder Parse uses for a chunk of fragment data.
type Hint int

const (
	// Unknown means the hint could not be derived and must be supplied
	// explicitly by the caller.
	Unknown Hint = iota
	TOML
	YAML
	JSON
)

func (h Hint) String() string {
	switch h {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// HintFromPath derives a Hint from a file extension.
func HintFromPath(path string) Hint {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML
	case ".yaml", ".yml":
		return YAML
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

// UnsupportedExtensionError reports a path whose extension Parse doesn't
// recognize.
type UnsupportedExtensionError struct {
	Path string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("unrecognized configuration file extension: %s", e.Path)
}
