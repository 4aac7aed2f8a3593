package format

import (
	"encoding/json"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"sigs.k8s.io/yaml"
)

// toJSONMap decodes data under hint into a generic map keyed by section
// name, bridging every format through JSON so a single set of `json`
// struct tags on rawDoc drives decoding regardless of source format.
func toJSONMap(data []byte, hint Hint) (map[string]json.RawMessage, error) {
	switch hint {
	case TOML:
		var generic map[string]interface{}
		if err := toml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		return remarshal(generic)
	case YAML:
		jsonBytes, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		var out map[string]json.RawMessage
		if err := json.Unmarshal(jsonBytes, &out); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		return out, nil
	case JSON:
		var out map[string]json.RawMessage
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot parse: %w", &UnsupportedExtensionError{Path: "<unknown>"})
	}
}

func remarshal(v interface{}) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
