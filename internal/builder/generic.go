package builder

import (
	"fmt"
	"net/netip"

	"github.com/opmodel/topology/internal/resource"
)

// ResourceSpec is the wire representation of a resource claim inside a
// component's configuration, decoded by internal/format and turned into a
// resource.Resource by Build.
type ResourceSpec struct {
	Kind     string `json:"kind"`
	Address  string `json:"address,omitempty"`
	Port     uint16 `json:"port,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	FD       uint32 `json:"fd,omitempty"`
	Offset   uint   `json:"offset,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Build turns a ResourceSpec into a resource.Resource, or an error if the
// kind is unrecognized or a port address doesn't parse.
func (s ResourceSpec) Build() (resource.Resource, error) {
	switch s.Kind {
	case "port":
		addr, err := netip.ParseAddr(s.Address)
		if err != nil {
			return resource.Resource{}, fmt.Errorf("resource %q: invalid address %q: %w", s.Kind, s.Address, err)
		}
		proto := resource.TCP
		if s.Protocol == "udp" || s.Protocol == "UDP" {
			proto = resource.UDP
		}
		return resource.NewPort(addr, s.Port, proto), nil
	case "fd", "file_descriptor":
		return resource.NewFD(s.FD), nil
	case "systemd_fd_offset":
		return resource.NewSystemFDOffset(s.Offset), nil
	case "disk_buffer":
		return resource.NewDiskBuffer(s.Name), nil
	default:
		return resource.Resource{}, fmt.Errorf("unrecognized resource kind %q", s.Kind)
	}
}

// GenericSpec is the declarative shape every registered component type
// decodes into: rather than hand-writing a Go struct per component type
// (kafka, http, file, ...), the registry reads the capability-relevant
// attributes directly off the component's own configuration section. This
// mirrors how the compiler only ever queries components through the
// Capability interface — it never needs type-specific business logic to
// validate a topology, only the declared shape of what each component
// produces, consumes, and claims.
type GenericSpec struct {
	Type                string              `json:"type"`
	OutputTypes         []string            `json:"output_types,omitempty"`
	RequiredInputTypes  []string            `json:"required_input_types,omitempty"`
	NamedOutputs        map[string][]string `json:"named_outputs,omitempty"`
	Resources           []ResourceSpec      `json:"resources,omitempty"`
	AcknowledgeCapable  bool                `json:"can_acknowledge,omitempty"`
	Expand              *ExpandSpec         `json:"expand,omitempty"`
}

// ExpandSpec declares a transform's inner sub-topology inline in
// configuration, used to decode Expandable transforms without a bespoke Go
// type per expandable transform kind.
type ExpandSpec struct {
	// Order lists the suffixes in insertion order.
	Order []string `json:"order"`
	// Transforms maps suffix -> the inner transform's own generic spec.
	Transforms map[string]GenericSpec `json:"transforms"`
	// EntryOutput is the suffix whose output stands in for the logical
	// transform's output.
	EntryOutput string `json:"entry_output"`
}

func parseTypeSet(names []string) (DataType, error) {
	var out DataType
	for _, n := range names {
		switch n {
		case "log":
			out |= DataTypeLog
		case "metric":
			out |= DataTypeMetric
		case "trace":
			out |= DataTypeTrace
		default:
			return 0, fmt.Errorf("unrecognized event type %q", n)
		}
	}
	return out, nil
}

// GenericCapability is the Capability implementation backing every
// component decoded by internal/format, built from a GenericSpec.
type GenericCapability struct {
	spec         GenericSpec
	outputTypes  DataType
	requiredType DataType
	namedOutputs map[string]DataType
	resources    []resource.Resource
}

// NewGenericCapability validates and builds a GenericCapability from a spec.
func NewGenericCapability(spec GenericSpec) (*GenericCapability, error) {
	out, err := parseTypeSet(spec.OutputTypes)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", spec.Type, err)
	}
	req, err := parseTypeSet(spec.RequiredInputTypes)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", spec.Type, err)
	}
	var named map[string]DataType
	if len(spec.NamedOutputs) > 0 {
		named = make(map[string]DataType, len(spec.NamedOutputs))
		for port, types := range spec.NamedOutputs {
			t, err := parseTypeSet(types)
			if err != nil {
				return nil, fmt.Errorf("component %q output %q: %w", spec.Type, port, err)
			}
			named[port] = t
		}
	}
	var resources []resource.Resource
	for _, rs := range spec.Resources {
		r, err := rs.Build()
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", spec.Type, err)
		}
		resources = append(resources, r)
	}
	return &GenericCapability{
		spec:         spec,
		outputTypes:  out,
		requiredType: req,
		namedOutputs: named,
		resources:    resources,
	}, nil
}

func (c *GenericCapability) TypeName() string                     { return c.spec.Type }
func (c *GenericCapability) OutputTypes() DataType                { return c.outputTypes }
func (c *GenericCapability) RequiredInputTypes() DataType         { return c.requiredType }
func (c *GenericCapability) NamedOutputs() map[string]DataType    { return c.namedOutputs }
func (c *GenericCapability) Resources() []resource.Resource       { return c.resources }
func (c *GenericCapability) SupportsAcknowledgements() bool       { return c.spec.AcknowledgeCapable }

// GenericExpandable wraps a GenericCapability whose spec declares an inline
// Expand block.
type GenericExpandable struct {
	*GenericCapability
}

// Expand builds the inner ExpansionResult from the spec's Expand block.
func (c *GenericExpandable) Expand() (*ExpansionResult, error) {
	spec := c.spec.Expand
	if spec == nil {
		return nil, fmt.Errorf("component %q: not expandable", c.spec.Type)
	}
	transforms := make(map[string]Capability, len(spec.Transforms))
	for _, suffix := range spec.Order {
		inner, ok := spec.Transforms[suffix]
		if !ok {
			return nil, fmt.Errorf("component %q: expand order references unknown suffix %q", c.spec.Type, suffix)
		}
		cap, err := NewGenericCapability(inner)
		if err != nil {
			return nil, fmt.Errorf("component %q: inner transform %q: %w", c.spec.Type, suffix, err)
		}
		transforms[suffix] = cap
	}
	return &ExpansionResult{
		Order:       spec.Order,
		Transforms:  transforms,
		EntryOutput: spec.EntryOutput,
	}, nil
}
