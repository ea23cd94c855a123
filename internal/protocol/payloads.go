package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
)

// ErrPayloadTooShort is returned when a typed payload decoder is handed a
// byte count other than its fixed wire layout requires (too few or too
// many).
var ErrPayloadTooShort = errors.New("protocol: payload length does not match expected size")

// ErrInvalidPort is returned when a StateService payload's port field
// overflows a 16-bit UDP port number.
var ErrInvalidPort = errors.New("protocol: service port exceeds uint16 range")

// Hsbk is the on-the-wire LIFX color: hue, saturation, brightness and
// kelvin, each a 16-bit unsigned integer, little-endian, 8 bytes total.
type Hsbk struct {
	Hue        uint16
	Saturation uint16
	Brightness uint16
	Kelvin     uint16
}

// MarshalBinary encodes h to its 8-byte wire form.
func (h Hsbk) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:], h.Hue)
	binary.LittleEndian.PutUint16(buf[2:], h.Saturation)
	binary.LittleEndian.PutUint16(buf[4:], h.Brightness)
	binary.LittleEndian.PutUint16(buf[6:], h.Kelvin)
	return buf, nil
}

// UnmarshalHsbk decodes an Hsbk from data, which must be exactly 8 bytes.
func UnmarshalHsbk(data []byte) (Hsbk, error) {
	if len(data) != 8 {
		return Hsbk{}, ErrPayloadTooShort
	}
	return Hsbk{
		Hue:        binary.LittleEndian.Uint16(data[0:]),
		Saturation: binary.LittleEndian.Uint16(data[2:]),
		Brightness: binary.LittleEndian.Uint16(data[4:]),
		Kelvin:     binary.LittleEndian.Uint16(data[6:]),
	}, nil
}

// Power is a device or light power state. Off carries level 0; On carries
// any nonzero level the device reported (not only 0xFFFF).
type Power struct {
	On    bool
	Level uint16
}

// PowerFromWire interprets a raw 16-bit power level the way the protocol
// requires: any nonzero value means on, regardless of the exact level.
func PowerFromWire(level uint16) Power {
	return Power{On: level != 0, Level: level}
}

// WireLevel returns the 16-bit level to place on the wire for p: 0 when
// off, Level when on (defaulting to the conventional 0xFFFF if Level is
// unset).
func (p Power) WireLevel() uint16 {
	if !p.On {
		return 0
	}
	if p.Level == 0 {
		return 0xFFFF
	}
	return p.Level
}

func trimNull(s string) string {
	return strings.TrimRight(s, "\x00")
}

func decodeFixedString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func encodeFixedString(s string, size int) []byte {
	buf := make([]byte, size)
	copy(buf, s)
	return buf
}

// StateServicePayload announces the UDP service a device listens on and
// the port it is reachable at. 5 bytes: service (1) + port (4).
type StateServicePayload struct {
	Service uint8
	Port    uint32
}

func (p StateServicePayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 5)
	buf[0] = p.Service
	binary.LittleEndian.PutUint32(buf[1:], p.Port)
	return buf, nil
}

func (p *StateServicePayload) UnmarshalBinary(data []byte) error {
	if len(data) != 5 {
		return ErrPayloadTooShort
	}
	p.Service = data[0]
	p.Port = binary.LittleEndian.Uint32(data[1:])
	if p.Port > 0xFFFF {
		return ErrInvalidPort
	}
	return nil
}

// StateLabelPayload is a device or group label: 32 bytes, UTF-8, null
// padded.
type StateLabelPayload struct {
	Label string
}

func (p StateLabelPayload) MarshalBinary() ([]byte, error) {
	return encodeFixedString(p.Label, 32), nil
}

func (p *StateLabelPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return ErrPayloadTooShort
	}
	p.Label = trimNull(decodeFixedString(data[:32]))
	return nil
}

// StateLocationPayload identifies the location a device belongs to: a
// 16-byte opaque id, a 32-byte label, and a device-clock timestamp in
// nanoseconds. 56 bytes total.
type StateLocationPayload struct {
	Location  [16]byte
	Label     string
	UpdatedAt uint64
}

func (p StateLocationPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 56)
	copy(buf[0:16], p.Location[:])
	copy(buf[16:48], encodeFixedString(p.Label, 32))
	binary.LittleEndian.PutUint64(buf[48:], p.UpdatedAt)
	return buf, nil
}

func (p *StateLocationPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 56 {
		return ErrPayloadTooShort
	}
	copy(p.Location[:], data[0:16])
	p.Label = trimNull(decodeFixedString(data[16:48]))
	p.UpdatedAt = binary.LittleEndian.Uint64(data[48:])
	return nil
}

// StateGroupPayload has the same layout as StateLocationPayload, keyed by
// group id instead of location id.
type StateGroupPayload struct {
	Group     [16]byte
	Label     string
	UpdatedAt uint64
}

func (p StateGroupPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 56)
	copy(buf[0:16], p.Group[:])
	copy(buf[16:48], encodeFixedString(p.Label, 32))
	binary.LittleEndian.PutUint64(buf[48:], p.UpdatedAt)
	return buf, nil
}

func (p *StateGroupPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 56 {
		return ErrPayloadTooShort
	}
	copy(p.Group[:], data[0:16])
	p.Label = trimNull(decodeFixedString(data[16:48]))
	p.UpdatedAt = binary.LittleEndian.Uint64(data[48:])
	return nil
}

// LightStatePayload is the light's full reported state: color, power and
// label. 52 bytes: Hsbk (8) + reserved (2) + power (2) + label (32) +
// reserved (8).
type LightStatePayload struct {
	Color Hsbk
	Power Power
	Label string
}

func (p LightStatePayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 52)
	hsbk, _ := p.Color.MarshalBinary()
	copy(buf[0:8], hsbk)
	binary.LittleEndian.PutUint16(buf[10:], p.Power.WireLevel())
	copy(buf[12:44], encodeFixedString(p.Label, 32))
	return buf, nil
}

func (p *LightStatePayload) UnmarshalBinary(data []byte) error {
	if len(data) != 52 {
		return ErrPayloadTooShort
	}
	hsbk, err := UnmarshalHsbk(data[0:8])
	if err != nil {
		return err
	}
	p.Color = hsbk
	p.Power = PowerFromWire(binary.LittleEndian.Uint16(data[10:12]))
	p.Label = trimNull(decodeFixedString(data[12:44]))
	return nil
}

// LightSetColorPayload requests a color transition. 13 bytes: reserved (1)
// + Hsbk (8) + duration in milliseconds (4).
type LightSetColorPayload struct {
	Color    Hsbk
	Duration uint32
}

func (p LightSetColorPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 13)
	hsbk, _ := p.Color.MarshalBinary()
	copy(buf[1:9], hsbk)
	binary.LittleEndian.PutUint32(buf[9:], p.Duration)
	return buf, nil
}

func (p *LightSetColorPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 13 {
		return ErrPayloadTooShort
	}
	hsbk, err := UnmarshalHsbk(data[1:9])
	if err != nil {
		return err
	}
	p.Color = hsbk
	p.Duration = binary.LittleEndian.Uint32(data[9:])
	return nil
}

// LightSetPowerPayload requests a power transition. 6 bytes: level (2) +
// duration in milliseconds (4).
type LightSetPowerPayload struct {
	Power    Power
	Duration uint32
}

func (p LightSetPowerPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 6)
	binary.LittleEndian.PutUint16(buf[0:], p.Power.WireLevel())
	binary.LittleEndian.PutUint32(buf[2:], p.Duration)
	return buf, nil
}

func (p *LightSetPowerPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 6 {
		return ErrPayloadTooShort
	}
	p.Power = PowerFromWire(binary.LittleEndian.Uint16(data[0:]))
	p.Duration = binary.LittleEndian.Uint32(data[2:])
	return nil
}

// DeviceStatePowerPayload is a device-level power report: a bare 16-bit
// level with no duration.
type DeviceStatePowerPayload struct {
	Power Power
}

func (p DeviceStatePowerPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, p.Power.WireLevel())
	return buf, nil
}

func (p *DeviceStatePowerPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return ErrPayloadTooShort
	}
	p.Power = PowerFromWire(binary.LittleEndian.Uint16(data))
	return nil
}

// DeviceSetPowerPayload requests a device-level power change, no duration.
type DeviceSetPowerPayload struct {
	Power Power
}

func (p DeviceSetPowerPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, p.Power.WireLevel())
	return buf, nil
}

func (p *DeviceSetPowerPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return ErrPayloadTooShort
	}
	p.Power = PowerFromWire(binary.LittleEndian.Uint16(data))
	return nil
}

// StateHostFirmwarePayload and StateWifiFirmwarePayload report firmware
// build/version information. 20 bytes: build timestamp (8) + reserved (8)
// + version minor (2) + version major (2).
type StateHostFirmwarePayload struct {
	Build        uint64
	VersionMinor uint16
	VersionMajor uint16
}

func (p StateHostFirmwarePayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 20)
	binary.LittleEndian.PutUint64(buf[0:], p.Build)
	binary.LittleEndian.PutUint16(buf[16:], p.VersionMinor)
	binary.LittleEndian.PutUint16(buf[18:], p.VersionMajor)
	return buf, nil
}

func (p *StateHostFirmwarePayload) UnmarshalBinary(data []byte) error {
	if len(data) != 20 {
		return ErrPayloadTooShort
	}
	p.Build = binary.LittleEndian.Uint64(data[0:])
	p.VersionMinor = binary.LittleEndian.Uint16(data[16:])
	p.VersionMajor = binary.LittleEndian.Uint16(data[18:])
	return nil
}

type StateWifiFirmwarePayload struct {
	Build        uint64
	VersionMinor uint16
	VersionMajor uint16
}

func (p StateWifiFirmwarePayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 20)
	binary.LittleEndian.PutUint64(buf[0:], p.Build)
	binary.LittleEndian.PutUint16(buf[16:], p.VersionMinor)
	binary.LittleEndian.PutUint16(buf[18:], p.VersionMajor)
	return buf, nil
}

func (p *StateWifiFirmwarePayload) UnmarshalBinary(data []byte) error {
	if len(data) != 20 {
		return ErrPayloadTooShort
	}
	p.Build = binary.LittleEndian.Uint64(data[0:])
	p.VersionMinor = binary.LittleEndian.Uint16(data[16:])
	p.VersionMajor = binary.LittleEndian.Uint16(data[18:])
	return nil
}

// StateHostInfoPayload and StateWifiInfoPayload report radio signal and
// load metrics. 14 bytes: signal (4, float32) + tx (4) + rx (4) +
// reserved (2).
type StateHostInfoPayload struct {
	Signal float32
	Tx     uint32
	Rx     uint32
}

func (p StateHostInfoPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 14)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(p.Signal))
	binary.LittleEndian.PutUint32(buf[4:], p.Tx)
	binary.LittleEndian.PutUint32(buf[8:], p.Rx)
	return buf, nil
}

func (p *StateHostInfoPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 14 {
		return ErrPayloadTooShort
	}
	p.Signal = math.Float32frombits(binary.LittleEndian.Uint32(data[0:]))
	p.Tx = binary.LittleEndian.Uint32(data[4:])
	p.Rx = binary.LittleEndian.Uint32(data[8:])
	return nil
}

type StateWifiInfoPayload struct {
	Signal float32
	Tx     uint32
	Rx     uint32
}

func (p StateWifiInfoPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 14)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(p.Signal))
	binary.LittleEndian.PutUint32(buf[4:], p.Tx)
	binary.LittleEndian.PutUint32(buf[8:], p.Rx)
	return buf, nil
}

func (p *StateWifiInfoPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 14 {
		return ErrPayloadTooShort
	}
	p.Signal = math.Float32frombits(binary.LittleEndian.Uint32(data[0:]))
	p.Tx = binary.LittleEndian.Uint32(data[4:])
	p.Rx = binary.LittleEndian.Uint32(data[8:])
	return nil
}

// StateVersionPayload identifies the hardware: vendor + product ids and a
// hardware revision, 12 bytes.
type StateVersionPayload struct {
	Vendor  uint32
	Product uint32
	Version uint32
}

func (p StateVersionPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:], p.Vendor)
	binary.LittleEndian.PutUint32(buf[4:], p.Product)
	binary.LittleEndian.PutUint32(buf[8:], p.Version)
	return buf, nil
}

func (p *StateVersionPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 12 {
		return ErrPayloadTooShort
	}
	p.Vendor = binary.LittleEndian.Uint32(data[0:])
	p.Product = binary.LittleEndian.Uint32(data[4:])
	p.Version = binary.LittleEndian.Uint32(data[8:])
	return nil
}

// StateInfoPayload reports device uptime/downtime, 24 bytes, all
// nanosecond counters.
type StateInfoPayload struct {
	Time     uint64
	Uptime   uint64
	Downtime uint64
}

func (p StateInfoPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint64(buf[0:], p.Time)
	binary.LittleEndian.PutUint64(buf[8:], p.Uptime)
	binary.LittleEndian.PutUint64(buf[16:], p.Downtime)
	return buf, nil
}

func (p *StateInfoPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 24 {
		return ErrPayloadTooShort
	}
	p.Time = binary.LittleEndian.Uint64(data[0:])
	p.Uptime = binary.LittleEndian.Uint64(data[8:])
	p.Downtime = binary.LittleEndian.Uint64(data[16:])
	return nil
}

// EchoPayload carries an opaque 64-byte blob; devices mirror it back
// unchanged, which makes it useful as a liveness probe.
type EchoPayload struct {
	Payload [64]byte
}

func (p EchoPayload) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 64)
	copy(buf, p.Payload[:])
	return buf, nil
}

func (p *EchoPayload) UnmarshalBinary(data []byte) error {
	if len(data) != 64 {
		return ErrPayloadTooShort
	}
	copy(p.Payload[:], data[:64])
	return nil
}
