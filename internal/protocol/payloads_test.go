package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestHsbkRoundTrip(t *testing.T) {
	h := Hsbk{Hue: 1000, Saturation: 2000, Brightness: 3000, Kelvin: 4000}
	buf, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, 8)

	got, err := UnmarshalHsbk(buf)
	require.NoError(t, err)
	if diff := cmp.Diff(h, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPowerFromWire(t *testing.T) {
	require.Equal(t, Power{On: false, Level: 0}, PowerFromWire(0))
	require.Equal(t, Power{On: true, Level: 1}, PowerFromWire(1))
	require.Equal(t, Power{On: true, Level: 0xFFFF}, PowerFromWire(0xFFFF))
}

func TestPowerWireLevel(t *testing.T) {
	require.Equal(t, uint16(0), Power{On: false}.WireLevel())
	require.Equal(t, uint16(0xFFFF), Power{On: true}.WireLevel())
	require.Equal(t, uint16(123), Power{On: true, Level: 123}.WireLevel())
}

func TestStateServicePayloadRoundTrip(t *testing.T) {
	p := StateServicePayload{Service: 1, Port: 56700}
	buf, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, 5)

	var got StateServicePayload
	require.NoError(t, got.UnmarshalBinary(buf))
	require.Equal(t, p, got)
}

func TestStateServicePayloadInvalidPort(t *testing.T) {
	buf := make([]byte, 5)
	buf[0] = 1
	// port = 0x1_0000_0000 doesn't fit in the buffer's 4 bytes, but a
	// value that overflows uint16 still fits in the wire's uint32 field.
	buf[1], buf[2], buf[3], buf[4] = 0x00, 0x00, 0x01, 0x00 // 0x00010000
	var got StateServicePayload
	err := got.UnmarshalBinary(buf)
	require.ErrorIs(t, err, ErrInvalidPort)
}

func TestStateLabelPayloadTrimsNulls(t *testing.T) {
	buf := make([]byte, 32)
	copy(buf, "kitchen")
	var p StateLabelPayload
	require.NoError(t, p.UnmarshalBinary(buf))
	require.Equal(t, "kitchen", p.Label)

	encoded, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, encoded, 32)
	require.Equal(t, byte(0), encoded[31])
}

func TestStateLocationPayloadRoundTrip(t *testing.T) {
	p := StateLocationPayload{
		Location:  [16]byte{1, 2, 3},
		Label:     "living room",
		UpdatedAt: 123456789,
	}
	buf, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, 56)

	var got StateLocationPayload
	require.NoError(t, got.UnmarshalBinary(buf))
	require.Equal(t, p, got)
}

func TestLightStatePayloadRoundTrip(t *testing.T) {
	p := LightStatePayload{
		Color: Hsbk{Hue: 1, Saturation: 2, Brightness: 3, Kelvin: 4},
		Power: Power{On: true, Level: 0xFFFF},
		Label: "lamp",
	}
	buf, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, 52)

	var got LightStatePayload
	require.NoError(t, got.UnmarshalBinary(buf))
	require.Equal(t, p, got)
}

func TestLightSetColorPayloadRoundTrip(t *testing.T) {
	p := LightSetColorPayload{Color: Hsbk{Hue: 10, Saturation: 20, Brightness: 30, Kelvin: 3500}, Duration: 1000}
	buf, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, 13)

	var got LightSetColorPayload
	require.NoError(t, got.UnmarshalBinary(buf))
	require.Equal(t, p, got)
}

func TestLightSetPowerPayloadRoundTrip(t *testing.T) {
	p := LightSetPowerPayload{Power: Power{On: true, Level: 0xFFFF}, Duration: 500}
	buf, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, 6)

	var got LightSetPowerPayload
	require.NoError(t, got.UnmarshalBinary(buf))
	require.Equal(t, p, got)
}
