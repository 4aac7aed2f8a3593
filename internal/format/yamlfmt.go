package format

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// topLevelOrder fixes the canonical section ordering a formatted fragment
// uses: scalar globals first, then the component namespaces in the order
// they participate in the dataflow (sources before transforms before
// sinks), then the namespaces that sit outside the graph.
var topLevelOrder = map[string]int{
	"data_dir":         1,
	"timezone":         2,
	"schema":           3,
	"api":              4,
	"healthchecks":     5,
	"proxy":            6,
	"acknowledgements": 7,
	"enterprise":       8,
	"sources":          10,
	"transforms":       11,
	"sinks":            12,
	"enrichment_tables": 20,
	"secrets":          21,
	"tests":            30,
}

// CanonicalizeYAML reformats a fragment's YAML into the canonical section
// and component-name ordering, preserving every comment attached to the
// original nodes (head, line, and foot comments travel with their node
// when the Content slice is reordered, rather than being dropped and
// re-synthesized).
func CanonicalizeYAML(data []byte, indent int) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		sortTopLevel(doc.Content[0])
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing YAML encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// sortTopLevel reorders the fragment's root mapping by topLevelOrder, and
// within each component-section mapping, alphabetically by component name.
func sortTopLevel(node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}

	type pair struct {
		key, value *yaml.Node
	}
	pairs := make([]pair, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		pairs = append(pairs, pair{key: node.Content[i], value: node.Content[i+1]})

		if isComponentSection(node.Content[i].Value) {
			sortByComponentName(node.Content[i+1])
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		oi, oj := sectionOrder(pairs[i].key.Value), sectionOrder(pairs[j].key.Value)
		if oi != oj {
			return oi < oj
		}
		return pairs[i].key.Value < pairs[j].key.Value
	})

	newContent := make([]*yaml.Node, 0, len(node.Content))
	for _, p := range pairs {
		newContent = append(newContent, p.key, p.value)
	}
	node.Content = newContent
}

func isComponentSection(key string) bool {
	switch key {
	case "sources", "transforms", "sinks", "enrichment_tables", "secrets":
		return true
	default:
		return false
	}
}

func sortByComponentName(node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}
	type pair struct{ key, value *yaml.Node }
	pairs := make([]pair, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		pairs = append(pairs, pair{key: node.Content[i], value: node.Content[i+1]})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key.Value < pairs[j].key.Value })

	newContent := make([]*yaml.Node, 0, len(node.Content))
	for _, p := range pairs {
		newContent = append(newContent, p.key, p.value)
	}
	node.Content = newContent
}

func sectionOrder(key string) int {
	if order, ok := topLevelOrder[key]; ok {
		return order
	}
	return 1000
}
