package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderBroadcastDefaults(t *testing.T) {
	p := NewBuilder(Empty{MsgType: GetService}).
		Source(0x11223344).
		ResponseRequired(true).
		Sequence(7).
		Build()

	require.True(t, p.Header.IsTagged())
	require.Equal(t, broadcastTarget, p.Header.Target)
	require.Equal(t, uint16(HeaderSize), p.Header.Size)
	require.Equal(t, uint16(GetService), p.Header.Type)
}

func TestBuilderTargetClearsTagged(t *testing.T) {
	mac := [6]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	p := NewBuilder(Empty{MsgType: LightGet}).Target(mac).Build()

	require.False(t, p.Header.IsTagged())
	require.Equal(t, mac[:], p.Header.Target[:6])
	require.Equal(t, [2]byte{0, 0}, [2]byte{p.Header.Target[6], p.Header.Target[7]})
}

func TestPacketRoundTrip(t *testing.T) {
	payload := LightSetColorPayload{Color: Hsbk{Hue: 1, Saturation: 2, Brightness: 3, Kelvin: 3500}, Duration: 1000}
	p := NewBuilder(NewMessage(LightSetColor, payload)).
		Source(42).
		Target([6]byte{1, 2, 3, 4, 5, 6}).
		ResponseRequired(true).
		Sequence(9).
		Build()

	buf, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, HeaderSize+13)

	got, err := ParsePacket(buf)
	require.NoError(t, err)
	require.Equal(t, LightSetColor, got.Message.Type())

	gotPayload, ok := Payload[LightSetColorPayload](got.Message)
	require.True(t, ok)
	require.Equal(t, payload, gotPayload)
}

func TestParsePacketTruncated(t *testing.T) {
	payload := StateServicePayload{Service: 1, Port: 56700}
	p := NewBuilder(NewMessage(StateService, payload)).Build()
	buf, err := p.MarshalBinary()
	require.NoError(t, err)

	_, err = ParsePacket(buf[:len(buf)-2])
	require.Error(t, err)
}

// A Size field smaller than the header itself must not reach the body
// slice expression, since HeaderSize:h.Size would be a negative-length
// slice and panic.
func TestParsePacketSizeSmallerThanHeaderIsError(t *testing.T) {
	payload := StateServicePayload{Service: 1, Port: 56700}
	p := NewBuilder(NewMessage(StateService, payload)).Build()
	buf, err := p.MarshalBinary()
	require.NoError(t, err)

	buf[0], buf[1] = 20, 0 // Size = 20, less than HeaderSize (36)

	_, err = ParsePacket(buf)
	require.ErrorIs(t, err, ErrTruncatedPacket)
}
