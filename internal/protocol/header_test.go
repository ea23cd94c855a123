package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Source: 0x11223344, Sequence: 7, Target: [8]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}}
	h.SetProtocol(lifxProtocol)
	h.SetAddressable(true)
	h.SetTagged(true)
	h.SetResponseRequired(true)
	h.Type = uint16(GetService)

	buf, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, HeaderSize)

	var got Header
	require.NoError(t, got.UnmarshalBinary(buf))
	if diff := cmp.Diff(h, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderUnmarshalTooShort(t *testing.T) {
	var h Header
	err := h.UnmarshalBinary(make([]byte, 10))
	require.ErrorIs(t, err, ErrInvalidHeaderLength)
}

func TestHeaderUnmarshalInvalidProtocol(t *testing.T) {
	buf := make([]byte, HeaderSize)
	// protocol field garbage, not 1024.
	buf[2], buf[3] = 0xFF, 0xFF
	var h Header
	err := h.UnmarshalBinary(buf)
	require.ErrorIs(t, err, ErrInvalidProtocol)
}

func TestHeaderFlagBits(t *testing.T) {
	var h Header
	h.SetProtocol(1024)
	require.Equal(t, uint16(1024), h.Protocol())

	h.SetAddressable(true)
	require.True(t, h.IsAddressable())
	h.SetAddressable(false)
	require.False(t, h.IsAddressable())

	h.SetTagged(true)
	require.True(t, h.IsTagged())
	h.SetTagged(false)
	require.False(t, h.IsTagged())

	h.SetOrigin(0)
	require.Equal(t, uint8(0), h.Origin())

	h.SetAckRequired(true)
	require.True(t, h.AckRequired())
	h.SetResponseRequired(true)
	require.True(t, h.ResponseRequired())
}

func TestHeaderBroadcastGetServiceBytes(t *testing.T) {
	// Broadcast GetService, source 0x11223344, sequence 7.
	h := Header{Size: HeaderSize, Source: 0x11223344, Sequence: 7}
	h.SetProtocol(lifxProtocol)
	h.SetAddressable(true)
	h.SetTagged(true)
	h.SetResponseRequired(true)
	h.Type = uint16(GetService)

	buf, err := h.MarshalBinary()
	require.NoError(t, err)

	want := []byte{
		0x24, 0x00, // size = 36
		0x00, 0x34, // FrameFlags LE: 0x3400 = protocol 1024 | addressable<<12 | tagged<<13
		0x44, 0x33, 0x22, 0x11, // source LE
		0, 0, 0, 0, 0, 0, 0, 0, // target (broadcast)
		0, 0, 0, 0, 0, 0, // reserved1
		0x01, // AddrFlags: res_required
		0x07, // sequence
		0, 0, 0, 0, 0, 0, 0, 0, // reserved2
		0x02, 0x00, // type = GetService
		0, 0, // reserved3
	}
	require.Equal(t, want, buf)
}
