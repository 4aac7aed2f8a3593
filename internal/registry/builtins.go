package registry

import (
	"encoding/json"
	"fmt"

	"github.com/opmodel/topology/internal/builder"
)

// fileDescriptorSpec is the file_descriptor source's own shape: a raw,
// caller-managed descriptor number, decoded directly (rather than through
// the generic resources list) since it's the component's only field.
type fileDescriptorSpec struct {
	FD          uint32   `json:"fd"`
	OutputTypes []string `json:"output_types,omitempty"`
}

func decodeFileDescriptor(raw json.RawMessage) (builder.Capability, error) {
	var s fileDescriptorSpec
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding file_descriptor: %w", err)
	}
	outputTypes := s.OutputTypes
	if len(outputTypes) == 0 {
		outputTypes = []string{"log"}
	}
	return builder.NewGenericCapability(builder.GenericSpec{
		Type:        "file_descriptor",
		OutputTypes: outputTypes,
		Resources:   []builder.ResourceSpec{{Kind: "fd", FD: s.FD}},
	})
}

// socketSpec is a network-bound source/sink's shape: bind address, port,
// and protocol.
type socketSpec struct {
	Address            string   `json:"address"`
	Port               uint16   `json:"port"`
	Protocol           string   `json:"protocol,omitempty"`
	OutputTypes        []string `json:"output_types,omitempty"`
	RequiredInputTypes []string `json:"required_input_types,omitempty"`
}

func decodeSocketSource(raw json.RawMessage) (builder.Capability, error) {
	var s socketSpec
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding socket source: %w", err)
	}
	outputTypes := s.OutputTypes
	if len(outputTypes) == 0 {
		outputTypes = []string{"log"}
	}
	return builder.NewGenericCapability(builder.GenericSpec{
		Type:        "socket",
		OutputTypes: outputTypes,
		Resources: []builder.ResourceSpec{
			{Kind: "port", Address: s.Address, Port: s.Port, Protocol: s.Protocol},
		},
	})
}

func decodeSocketSink(raw json.RawMessage) (builder.Capability, error) {
	var s socketSpec
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding socket sink: %w", err)
	}
	requiredTypes := s.RequiredInputTypes
	if len(requiredTypes) == 0 {
		requiredTypes = []string{"log"}
	}
	return builder.NewGenericCapability(builder.GenericSpec{
		Type:               "socket",
		RequiredInputTypes: requiredTypes,
		Resources: []builder.ResourceSpec{
			{Kind: "port", Address: s.Address, Port: s.Port, Protocol: s.Protocol},
		},
	})
}

func registerBuiltins(r *Registry) {
	r.Register("file_descriptor", decodeFileDescriptor)
	r.Register("socket_source", decodeSocketSource)
	r.Register("socket_sink", decodeSocketSink)
}
