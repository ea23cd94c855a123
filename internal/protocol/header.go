// Package protocol implements the LIFX LAN protocol v2 wire format: the
// 36-byte packet header, the message taxonomy, and the packet assembler
// that glues them together.
package protocol

import (
	"encoding/binary"
	"errors"
)

const (
	// HeaderSize is the fixed length, in bytes, of a LIFX packet header.
	HeaderSize = 36

	// lifxProtocol is the only protocol version this package understands.
	// It occupies the low 12 bits of the frame's FrameFlags field.
	lifxProtocol = 1024
)

// ErrInvalidHeaderLength is returned when a buffer shorter than HeaderSize
// is handed to Header.UnmarshalBinary.
var ErrInvalidHeaderLength = errors.New("protocol: buffer shorter than header size")

// ErrInvalidProtocol is returned when the decoded FrameFlags field does not
// carry the expected protocol constant, or carries nonzero origin bits.
var ErrInvalidProtocol = errors.New("protocol: frame protocol/origin constant violated")

// Header represents the full 36-byte LIFX message header: Frame (8 bytes),
// FrameAddress (16 bytes) and ProtocolHeader (12 bytes), laid out back to
// back exactly as they appear on the wire.
type Header struct {
	// Frame (bytes 0-7)
	Size       uint16  // 0-1: size of the entire packet, header included
	FrameFlags uint16  // 2-3: protocol (12 bits) | addressable (1 bit) | tagged (1 bit) | origin (2 bits)
	Source     uint32  // 4-7: client-chosen identifier, echoed back in responses

	// FrameAddress (bytes 8-23)
	Target    [8]byte // 8-15: 6-byte MAC followed by 2 zero pad bytes, or all-zero for broadcast
	Reserved1 [6]byte // 16-21: reserved, always zero
	AddrFlags uint8   // 22: res_required (bit 0), ack_required (bit 1), reserved (bits 2-7)
	Sequence  uint8   // 23: wrapping per-request counter

	// ProtocolHeader (bytes 24-35)
	Reserved2 [8]byte // 24-31: reserved, always zero
	Type      uint16  // 32-33: numeric message type code
	Reserved3 uint16  // 34-35: reserved, always zero
}

// Protocol returns the 12-bit protocol field from FrameFlags.
func (h *Header) Protocol() uint16 {
	return h.FrameFlags & 0x0FFF
}

// SetProtocol sets the 12-bit protocol field in FrameFlags.
func (h *Header) SetProtocol(p uint16) {
	h.FrameFlags = (h.FrameFlags & 0xF000) | (p & 0x0FFF)
}

// IsAddressable reports whether the addressable bit (bit 12) is set.
func (h *Header) IsAddressable() bool {
	return (h.FrameFlags>>12)&0x1 == 1
}

// SetAddressable sets or clears the addressable bit (bit 12).
func (h *Header) SetAddressable(v bool) {
	if v {
		h.FrameFlags |= 1 << 12
	} else {
		h.FrameFlags &^= 1 << 12
	}
}

// IsTagged reports whether the tagged bit (bit 13) is set. Tagged packets
// address every device on the network; untagged packets address Target.
func (h *Header) IsTagged() bool {
	return (h.FrameFlags>>13)&0x1 == 1
}

// SetTagged sets or clears the tagged bit (bit 13).
func (h *Header) SetTagged(v bool) {
	if v {
		h.FrameFlags |= 1 << 13
	} else {
		h.FrameFlags &^= 1 << 13
	}
}

// Origin returns the 2-bit origin field (bits 14-15). Always 0 on the wire.
func (h *Header) Origin() uint8 {
	return uint8((h.FrameFlags >> 14) & 0x3)
}

// SetOrigin sets the 2-bit origin field (bits 14-15).
func (h *Header) SetOrigin(o uint8) {
	h.FrameFlags = (h.FrameFlags & 0x3FFF) | (uint16(o&0x3) << 14)
}

// AckRequired reports whether the device should ack this request.
func (h *Header) AckRequired() bool {
	return h.AddrFlags&0x2 != 0
}

// SetAckRequired sets or clears the ack_required bit.
func (h *Header) SetAckRequired(v bool) {
	if v {
		h.AddrFlags |= 0x2
	} else {
		h.AddrFlags &^= 0x2
	}
}

// ResponseRequired reports whether the device should send a State response.
func (h *Header) ResponseRequired() bool {
	return h.AddrFlags&0x1 != 0
}

// SetResponseRequired sets or clears the res_required bit.
func (h *Header) SetResponseRequired(v bool) {
	if v {
		h.AddrFlags |= 0x1
	} else {
		h.AddrFlags &^= 0x1
	}
}

// MarshalBinary encodes the header to its canonical 36-byte wire form.
// Reserved fields are always emitted as zero regardless of their value.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:], h.Size)
	binary.LittleEndian.PutUint16(buf[2:], h.FrameFlags)
	binary.LittleEndian.PutUint32(buf[4:], h.Source)
	copy(buf[8:16], h.Target[:])
	// buf[16:22] stays zero: Reserved1 is never round-tripped verbatim.
	buf[22] = h.AddrFlags
	buf[23] = h.Sequence
	// buf[24:32] stays zero: Reserved2 is never round-tripped verbatim.
	binary.LittleEndian.PutUint16(buf[32:], h.Type)
	return buf, nil
}

// UnmarshalBinary decodes a 36-byte header from data. It returns
// ErrInvalidHeaderLength if data is too short, and ErrInvalidProtocol if the
// decoded protocol constant or origin bits don't match the LIFX LAN v2
// invariant (low 12 bits of FrameFlags == 1024, origin bits == 0).
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return ErrInvalidHeaderLength
	}
	h.Size = binary.LittleEndian.Uint16(data[0:])
	h.FrameFlags = binary.LittleEndian.Uint16(data[2:])
	h.Source = binary.LittleEndian.Uint32(data[4:])
	copy(h.Target[:], data[8:16])
	copy(h.Reserved1[:], data[16:22])
	h.AddrFlags = data[22]
	h.Sequence = data[23]
	copy(h.Reserved2[:], data[24:32])
	h.Type = binary.LittleEndian.Uint16(data[32:])
	h.Reserved3 = binary.LittleEndian.Uint16(data[34:])

	if h.Protocol() != lifxProtocol || h.Origin() != 0 {
		return ErrInvalidProtocol
	}
	return nil
}
