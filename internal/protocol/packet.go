package protocol

import (
	"errors"
)

// ErrTruncatedPacket is returned when a buffer is shorter than the frame
// size it claims to encode.
var ErrTruncatedPacket = errors.New("protocol: buffer shorter than frame size")

// Packet is a full LIFX packet: header plus decoded message.
type Packet struct {
	Header  Header
	Message Message
}

// MarshalBinary encodes the packet to its wire form. The header's Size
// and Type fields are recomputed from Message, so callers never need to
// set them by hand.
func (p Packet) MarshalBinary() ([]byte, error) {
	body, err := p.Message.MarshalBinary()
	if err != nil {
		return nil, err
	}
	h := p.Header
	h.Size = uint16(HeaderSize + len(body))
	h.Type = uint16(p.Message.Type())
	hdr, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(hdr, body...), nil
}

// ParsePacket decodes a full packet (header + message body) from data.
func ParsePacket(data []byte) (Packet, error) {
	var h Header
	if err := h.UnmarshalBinary(data); err != nil {
		return Packet{}, err
	}
	if int(h.Size) < HeaderSize || int(h.Size) > len(data) {
		return Packet{}, ErrTruncatedPacket
	}
	body := data[HeaderSize:h.Size]
	msg, err := DecodeMessage(Type(h.Type), body)
	if err != nil {
		return Packet{}, err
	}
	return Packet{Header: h, Message: msg}, nil
}

// broadcastTarget is the all-zero MAC that addresses every device.
var broadcastTarget [8]byte

// Builder assembles a Packet with the same defaults the protocol expects
// for a freshly built request: tagged (broadcast), source 0, target
// broadcast, sequence 0, neither ack nor response required.
type Builder struct {
	tagged      bool
	source      uint32
	target      [8]byte
	resRequired bool
	ackRequired bool
	sequence    uint8
	message     Message
}

// NewBuilder starts a Builder for message.
func NewBuilder(message Message) *Builder {
	return &Builder{
		tagged:  true,
		target:  broadcastTarget,
		message: message,
	}
}

// Source sets the client source identifier.
func (b *Builder) Source(source uint32) *Builder {
	b.source = source
	return b
}

// Target sets the destination MAC address and clears the tagged
// (broadcast) bit, since setting a concrete target always means unicast.
func (b *Builder) Target(mac [6]byte) *Builder {
	copy(b.target[:6], mac[:])
	b.target[6], b.target[7] = 0, 0
	b.tagged = false
	return b
}

// ResponseRequired sets whether the device should send a State response.
func (b *Builder) ResponseRequired(v bool) *Builder {
	b.resRequired = v
	return b
}

// AckRequired sets whether the device should acknowledge the request.
func (b *Builder) AckRequired(v bool) *Builder {
	b.ackRequired = v
	return b
}

// Sequence sets the per-request sequence tag.
func (b *Builder) Sequence(seq uint8) *Builder {
	b.sequence = seq
	return b
}

// Build produces the finished Packet. Size is computed from the
// message's encoded length; the protocol header's type code is taken
// from the message itself.
func (b *Builder) Build() Packet {
	h := Header{
		Source:   b.source,
		Target:   b.target,
		Sequence: b.sequence,
	}
	h.SetProtocol(lifxProtocol)
	h.SetAddressable(true)
	h.SetTagged(b.tagged)
	h.SetResponseRequired(b.resRequired)
	h.SetAckRequired(b.ackRequired)

	body, _ := b.message.MarshalBinary()
	h.Size = uint16(HeaderSize + len(body))
	h.Type = uint16(b.message.Type())

	return Packet{Header: h, Message: b.message}
}
