// Package resource implements the resource arbiter: detection of two or
// more components claiming the same externally-observable exclusive
// resource (a bound port, an inherited or raw file descriptor, or a named
// on-disk buffer).
package resource

import (
	"fmt"
	"net/netip"
)

// Protocol is the transport protocol a Port resource is bound on.
type Protocol int

const (
	// TCP identifies a TCP port claim.
	TCP Protocol = iota
	// UDP identifies a UDP port claim.
	UDP
)

func (p Protocol) String() string {
	if p == UDP {
		return "UDP"
	}
	return "TCP"
}

// Kind discriminates the Resource tagged union.
type Kind int

const (
	// KindPort is a bound network port.
	KindPort Kind = iota
	// KindSystemFDOffset is a systemd LISTEN_FDS-style inherited descriptor.
	KindSystemFDOffset
	// KindFD is a raw, caller-managed file descriptor.
	KindFD
	// KindDiskBuffer is a named on-disk buffer directory.
	KindDiskBuffer
)

// Resource is a tagged union over the claim types the arbiter understands.
// Only the fields relevant to Kind are meaningful; Resource is intended to
// be used as a map key, so all fields must be comparable.
type Resource struct {
	Kind Kind

	// Port fields, valid when Kind == KindPort.
	Addr  netip.Addr
	Port  uint16
	Proto Protocol

	// SystemFDOffset / FD fields.
	Offset uint
	FD     uint32

	// DiskBuffer field.
	Name string
}

// NewPort returns a Port resource claim.
func NewPort(addr netip.Addr, port uint16, proto Protocol) Resource {
	return Resource{Kind: KindPort, Addr: addr, Port: port, Proto: proto}
}

// NewSystemFDOffset returns a systemd-inherited-descriptor claim.
func NewSystemFDOffset(offset uint) Resource {
	return Resource{Kind: KindSystemFDOffset, Offset: offset}
}

// NewFD returns a raw file-descriptor claim.
func NewFD(fd uint32) Resource {
	return Resource{Kind: KindFD, FD: fd}
}

// NewDiskBuffer returns a named on-disk buffer claim.
func NewDiskBuffer(name string) Resource {
	return Resource{Kind: KindDiskBuffer, Name: name}
}

// IsWildcard reports whether a Port resource is bound to a wildcard
// interface (0.0.0.0 or ::), which conflicts with any specific interface
// bound to the same (port, proto).
func (r Resource) IsWildcard() bool {
	return r.Kind == KindPort && (r.Addr == netip.IPv4Unspecified() || r.Addr == netip.IPv6Unspecified())
}

// portKey identifies the (port, protocol) bucket used for wildcard-overlap
// detection, deliberately excluding the interface.
type portKey struct {
	Port  uint16
	Proto Protocol
}

func (r Resource) portKey() portKey {
	return portKey{Port: r.Port, Proto: r.Proto}
}

// String renders the display form used in conflict diagnostics, e.g.
// "TCP port: 0.0.0.0:8080" or "file descriptor: 10".
func (r Resource) String() string {
	switch r.Kind {
	case KindPort:
		return fmt.Sprintf("%s port: %s", r.Proto, netip.AddrPortFrom(r.Addr, r.Port))
	case KindSystemFDOffset:
		return fmt.Sprintf("systemd file descriptor offset: %d", r.Offset)
	case KindFD:
		return fmt.Sprintf("file descriptor: %d", r.FD)
	case KindDiskBuffer:
		return fmt.Sprintf("disk buffer: %s", r.Name)
	default:
		return "unknown resource"
	}
}
