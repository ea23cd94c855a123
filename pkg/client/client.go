package client

import (
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/kelcecil/lifxlan-go/internal/logutil"
	"github.com/kelcecil/lifxlan-go/internal/protocol"
)

const (
	zeroDuration = 0 * time.Millisecond
	maxDuration  = time.Duration(^uint32(0)) * time.Millisecond
)

// Config customizes Client construction. The zero value is valid: every
// field is filled with a sane default by NewClient.
type Config struct {
	// Source uniquely identifies this client to devices on the network;
	// devices echo it back in their responses. Generated randomly when
	// zero.
	Source uint32
	// DiscoveryTimeout bounds how long Discover collects broadcast
	// responses, measured from the start of collection (the window is not
	// extended when a responder replies), and separately bounds each
	// discovered device's label/group/location lookup. Defaults to 500ms.
	DiscoveryTimeout time.Duration
}

// Client is a stateful, single-threaded LIFX LAN client. It owns one UDP
// endpoint for its lifetime, allocates a wrapping 8-bit sequence counter
// per request, and retains discovered devices until ForgetDevices is
// called. A Client is not safe for concurrent use: a single UDP endpoint
// cannot interleave two request/response exchanges without sequence-
// based demultiplexing, which this package does not implement.
type Client struct {
	transport *Transport
	source    uint32
	sequence  uint8
	devices   map[DeviceAddress]Device

	discoveryTimeout time.Duration
}

// NewClient wraps an already-bound UDP socket. cfg may be nil to accept
// all defaults.
func NewClient(conn *net.UDPConn, cfg *Config) *Client {
	logutil.Init()
	if cfg == nil {
		cfg = &Config{}
	}
	source := cfg.Source
	if source == 0 {
		source = rand.Uint32()
	}
	discoveryTimeout := cfg.DiscoveryTimeout
	if discoveryTimeout == 0 {
		discoveryTimeout = discoveryTimeoutDefault
	}

	return &Client{
		transport:        NewTransport(conn),
		source:           source,
		devices:          make(map[DeviceAddress]Device),
		discoveryTimeout: discoveryTimeout,
	}
}

const discoveryTimeoutDefault = 500 * time.Millisecond

// Close releases the underlying UDP socket.
func (c *Client) Close() error {
	return c.transport.Close()
}

// nextSequence returns the current sequence value then increments the
// counter, wrapping at 256. It is the Go idiom's answer to the reference
// client's interior-mutable Cell<u8>: Client methods already take
// pointer receivers, so a plain field mutated in place is sufficient.
func (c *Client) nextSequence() uint8 {
	seq := c.sequence
	c.sequence++
	return seq
}

// Discover broadcasts for devices, fetches label/group/location for each
// newly-seen address, and returns a snapshot of every device known to
// this client so far (including ones found in earlier Discover calls).
func (c *Client) Discover() (map[DeviceAddress]Device, error) {
	defer c.transport.SetReadTimeout(0)
	if err := c.transport.SetReadTimeout(c.discoveryTimeout); err != nil {
		return nil, err
	}
	addrs, err := getDeviceAddresses(c.transport, c.source, c.nextSequence())
	if err != nil {
		return nil, err
	}

	for _, addr := range addrs {
		if _, known := c.devices[addr]; known {
			continue
		}
		// Collection ends only once the deadline has passed, so each
		// lookup needs a fresh one.
		if err := c.transport.SetReadTimeout(c.discoveryTimeout); err != nil {
			return nil, err
		}
		if _, err := c.FindDevice(addr); err != nil {
			return nil, err
		}
	}
	return c.GetDevices(), nil
}

// FindDevice fetches label, group and location for address, stores the
// resulting Device, and returns it.
func (c *Client) FindDevice(address DeviceAddress) (Device, error) {
	device, err := c.refreshMessages(address)
	if err != nil {
		return Device{}, err
	}
	c.devices[address] = device
	return device, nil
}

// refreshMessages issues the Get* requests that make up a device's full
// state (label, group, location) and folds the responses into a Device.
// The requests are still sent one at a time, matching the protocol's
// one-call-per-field sequencing; this just groups them under a single
// call for FindDevice the way a bulk state refresh would.
func (c *Client) refreshMessages(address DeviceAddress) (Device, error) {
	label, err := getLabel(c.transport, address, c.source, c.nextSequence())
	if err != nil {
		return Device{}, fmt.Errorf("client: fetching label: %w", err)
	}
	group, err := getGroup(c.transport, address, c.source, c.nextSequence())
	if err != nil {
		return Device{}, fmt.Errorf("client: fetching group: %w", err)
	}
	location, err := getLocation(c.transport, address, c.source, c.nextSequence())
	if err != nil {
		return Device{}, fmt.Errorf("client: fetching location: %w", err)
	}

	return Device{
		Address:  address,
		Label:    label.Label,
		Group:    group.Label,
		Location: location.Label,
	}, nil
}

// ForgetDevices clears every device this client has discovered.
func (c *Client) ForgetDevices() {
	c.devices = make(map[DeviceAddress]Device)
}

// GetDevices returns a snapshot of every device this client currently
// knows about.
func (c *Client) GetDevices() map[DeviceAddress]Device {
	snapshot := make(map[DeviceAddress]Device, len(c.devices))
	for k, v := range c.devices {
		snapshot[k] = v
	}
	return snapshot
}

func (c *Client) getState(device Device) (protocol.LightStatePayload, error) {
	return getState(c.transport, device.Address, c.source, c.nextSequence())
}

// GetColor fetches a device's current color.
func (c *Client) GetColor(device Device) (Color, error) {
	state, err := c.getState(device)
	if err != nil {
		return Color{}, err
	}
	return colorFromHSBK(state.Color), nil
}

// TransitionOn turns device on over duration.
func (c *Client) TransitionOn(device Device, duration time.Duration) error {
	return setPower(c.transport, device.Address, c.source, c.nextSequence(), protocol.Power{On: true, Level: 0xFFFF}, toMillis(duration))
}

// TurnOn is TransitionOn with no transition.
func (c *Client) TurnOn(device Device) error { return c.TransitionOn(device, zeroDuration) }

// TransitionOff turns device off over duration.
func (c *Client) TransitionOff(device Device, duration time.Duration) error {
	return setPower(c.transport, device.Address, c.source, c.nextSequence(), protocol.Power{On: false}, toMillis(duration))
}

// TurnOff is TransitionOff with no transition.
func (c *Client) TurnOff(device Device) error { return c.TransitionOff(device, zeroDuration) }

// TransitionToggle reads the device's current power and flips it over
// duration.
func (c *Client) TransitionToggle(device Device, duration time.Duration) error {
	state, err := c.getState(device)
	if err != nil {
		return err
	}
	if state.Power.On {
		return c.TransitionOff(device, duration)
	}
	return c.TransitionOn(device, duration)
}

// TogglePower is TransitionToggle with no transition.
func (c *Client) TogglePower(device Device) error { return c.TransitionToggle(device, zeroDuration) }

// TransitionBrightness sets brightness (0-1, clamped) over duration,
// preserving hue/saturation/kelvin. If brightness is non-positive, the
// device is turned off instead. If the device is currently off, it is
// turned on (with no transition) before the brightness change is sent,
// matching the reference client's "wake to set" behavior.
func (c *Client) TransitionBrightness(device Device, brightness float64, duration time.Duration) error {
	if brightness <= 0 {
		return c.TransitionOff(device, duration)
	}

	state, err := c.getState(device)
	if err != nil {
		return err
	}
	if !state.Power.On {
		if err := c.TurnOn(device); err != nil {
			return err
		}
	}

	hsbk := state.Color
	hsbk.Brightness = denormalize(min(brightness, 1))
	return setColor(c.transport, device.Address, c.source, c.nextSequence(), hsbk, toMillis(duration))
}

// SetBrightness is TransitionBrightness with no transition.
func (c *Client) SetBrightness(device Device, brightness float64) error {
	return c.TransitionBrightness(device, brightness, zeroDuration)
}

// TransitionColor sends color to device over duration.
func (c *Client) TransitionColor(device Device, color Color, duration time.Duration) error {
	return setColor(c.transport, device.Address, c.source, c.nextSequence(), color.ToHSBK(), toMillis(duration))
}

// SetColor is TransitionColor with no transition.
func (c *Client) SetColor(device Device, color Color) error {
	return c.TransitionColor(device, color, zeroDuration)
}

// TransitionTemperature resets hue and saturation to zero, sets kelvin,
// and keeps the device's current brightness, over duration.
func (c *Client) TransitionTemperature(device Device, kelvin uint16, duration time.Duration) error {
	state, err := c.getState(device)
	if err != nil {
		return err
	}
	hsbk := state.Color
	hsbk.Hue, hsbk.Saturation, hsbk.Kelvin = 0, 0, kelvin
	return setColor(c.transport, device.Address, c.source, c.nextSequence(), hsbk, toMillis(duration))
}

// SetTemperature is TransitionTemperature with no transition.
func (c *Client) SetTemperature(device Device, kelvin uint16) error {
	return c.TransitionTemperature(device, kelvin, zeroDuration)
}

// TransitionTemperatureBrightness reads the device's state, then sets
// kelvin (resetting hue and saturation to zero) and brightness (0-1,
// clamped) in a single SetColor. Unlike TransitionBrightness it does not
// turn an off device on first, and a non-positive brightness is sent as
// brightness 0 rather than turning the device off.
func (c *Client) TransitionTemperatureBrightness(device Device, kelvin uint16, brightness float64, duration time.Duration) error {
	state, err := c.getState(device)
	if err != nil {
		return err
	}
	hsbk := state.Color
	hsbk.Hue, hsbk.Saturation, hsbk.Kelvin = 0, 0, kelvin
	hsbk.Brightness = denormalize(min(brightness, 1))
	return setColor(c.transport, device.Address, c.source, c.nextSequence(), hsbk, toMillis(duration))
}

// SetTemperatureBrightness is TransitionTemperatureBrightness with no
// transition.
func (c *Client) SetTemperatureBrightness(device Device, kelvin uint16, brightness float64) error {
	return c.TransitionTemperatureBrightness(device, kelvin, brightness, zeroDuration)
}

// toMillis converts a duration to the protocol's u32 millisecond field,
// saturating at u32 max and clamping negative durations to zero.
func toMillis(d time.Duration) uint32 {
	switch {
	case d < 0:
		return 0
	case d > maxDuration:
		return ^uint32(0)
	default:
		return uint32(d.Milliseconds())
	}
}
