package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeMessageStateService(t *testing.T) {
	// Type 3 body (5 bytes; 41 with the header): service=1 port=56700.
	payload := StateServicePayload{Service: 1, Port: 56700}
	body, err := payload.MarshalBinary()
	require.NoError(t, err)

	msg, err := DecodeMessage(StateService, body)
	require.NoError(t, err)
	require.Equal(t, StateService, msg.Type())

	got, ok := Payload[StateServicePayload](msg)
	require.True(t, ok)
	require.Equal(t, payload, got)
}

func TestDecodeMessageEmptyRecognizedType(t *testing.T) {
	msg, err := DecodeMessage(GetService, nil)
	require.NoError(t, err)
	require.Equal(t, GetService, msg.Type())
	_, isEmpty := msg.(Empty)
	require.True(t, isEmpty)
}

func TestDecodeMessageUnrecognizedTypeFallsBackToBytes(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	msg, err := DecodeMessage(Type(9999), raw)
	require.NoError(t, err)
	b, ok := msg.(Bytes)
	require.True(t, ok)
	require.Equal(t, Type(9999), b.Type())
	require.Equal(t, raw, b.Raw)
}

func TestDecodeMessagePayloadTooShortIsError(t *testing.T) {
	_, err := DecodeMessage(StateService, []byte{1, 2})
	require.ErrorIs(t, err, ErrPayloadTooShort)
}

func TestNewMessageWraps(t *testing.T) {
	p := LightSetColorPayload{Color: Hsbk{Kelvin: 3500}, Duration: 0}
	msg := NewMessage(LightSetColor, p)
	require.Equal(t, LightSetColor, msg.Type())

	body, err := msg.MarshalBinary()
	require.NoError(t, err)
	want, _ := p.MarshalBinary()
	require.Equal(t, want, body)
}
