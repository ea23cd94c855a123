// Package client implements a synchronous LIFX LAN client: device
// discovery, device metadata lookup, and light control, built directly
// on the wire codec in internal/protocol.
package client

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ErrMalformedDeviceAddress is returned by ParseDeviceAddress when its
// input isn't exactly one MacAddress, a single '#', and a socket literal.
var ErrMalformedDeviceAddress = errors.New("client: malformed device address")

// MacAddress is a 6-byte LIFX device identifier, comparable and usable as
// a map key.
type MacAddress [6]byte

// String renders m as lowercase colon-separated hex, e.g.
// "d0:73:d5:01:02:03".
func (m MacAddress) String() string {
	var b strings.Builder
	for i, octet := range m {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(hex.EncodeToString([]byte{octet}))
	}
	return b.String()
}

// ParseMacAddress parses the inverse of MacAddress.String.
func ParseMacAddress(s string) (MacAddress, error) {
	var m MacAddress
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return m, fmt.Errorf("%w: mac %q must have 6 colon-separated octets", ErrMalformedDeviceAddress, s)
	}
	for i, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil || len(b) != 1 {
			return m, fmt.Errorf("%w: mac %q has invalid octet %q", ErrMalformedDeviceAddress, s, p)
		}
		m[i] = b[0]
	}
	return m, nil
}

// SocketEndpoint is a comparable stand-in for *net.UDPAddr (which embeds
// a slice and so cannot be a map key or struct-compared). It holds an
// IPv4 address as a fixed-size array plus a UDP port.
type SocketEndpoint struct {
	IP   [4]byte
	Port uint16
}

// NewSocketEndpoint builds a SocketEndpoint from a standard net.UDPAddr.
// Only IPv4 addresses are supported, matching the LIFX LAN protocol's
// IPv4-only broadcast discovery.
func NewSocketEndpoint(addr *net.UDPAddr) (SocketEndpoint, error) {
	var s SocketEndpoint
	ip4 := addr.IP.To4()
	if ip4 == nil {
		return s, fmt.Errorf("client: address %s is not IPv4", addr)
	}
	copy(s.IP[:], ip4)
	s.Port = uint16(addr.Port)
	return s, nil
}

// UDPAddr converts back to a *net.UDPAddr for use with net package calls.
func (s SocketEndpoint) UDPAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv4(s.IP[0], s.IP[1], s.IP[2], s.IP[3]), Port: int(s.Port)}
}

// WithPort returns a copy of s with Port replaced, used when a device's
// StateService response reports the port it actually listens on.
func (s SocketEndpoint) WithPort(port uint16) SocketEndpoint {
	s.Port = port
	return s
}

// String renders s as "ip:port".
func (s SocketEndpoint) String() string {
	return s.UDPAddr().String()
}

// ParseSocketEndpoint parses the inverse of SocketEndpoint.String.
func ParseSocketEndpoint(s string) (SocketEndpoint, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return SocketEndpoint{}, fmt.Errorf("%w: socket %q: %v", ErrMalformedDeviceAddress, s, err)
	}
	ip := net.ParseIP(host).To4()
	if ip == nil {
		return SocketEndpoint{}, fmt.Errorf("%w: socket %q has no valid IPv4 host", ErrMalformedDeviceAddress, s)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return SocketEndpoint{}, fmt.Errorf("%w: socket %q has invalid port: %v", ErrMalformedDeviceAddress, s, err)
	}
	var e SocketEndpoint
	copy(e.IP[:], ip)
	e.Port = uint16(port)
	return e, nil
}

// DeviceAddress identifies a device by its MAC plus the endpoint it is
// currently reachable at. Comparable and hashable, so it can key a set.
type DeviceAddress struct {
	Mac      MacAddress
	Endpoint SocketEndpoint
}

// String renders a as "<mac>#<ip:port>".
func (a DeviceAddress) String() string {
	return a.Mac.String() + "#" + a.Endpoint.String()
}

// ParseDeviceAddress parses the inverse of DeviceAddress.String. It fails
// if s does not contain exactly one '#' separator, or if either half
// fails its own parse.
func ParseDeviceAddress(s string) (DeviceAddress, error) {
	parts := strings.Split(s, "#")
	if len(parts) != 2 {
		return DeviceAddress{}, fmt.Errorf("%w: %q must contain exactly one '#'", ErrMalformedDeviceAddress, s)
	}
	mac, err := ParseMacAddress(parts[0])
	if err != nil {
		return DeviceAddress{}, err
	}
	endpoint, err := ParseSocketEndpoint(parts[1])
	if err != nil {
		return DeviceAddress{}, err
	}
	return DeviceAddress{Mac: mac, Endpoint: endpoint}, nil
}

// Device is a discovered LIFX device: its address plus the metadata
// fetched during discovery. Label, Group and Location are trimmed of
// trailing null bytes on ingestion and capped at 32 bytes on the wire.
type Device struct {
	Address  DeviceAddress
	Label    string
	Group    string
	Location string
}
