package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMacAddressRoundTrip(t *testing.T) {
	mac := MacAddress{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	str := mac.String()
	require.Equal(t, "de:ad:be:ef:00:01", str)
	require.Len(t, str, 17)

	got, err := ParseMacAddress(str)
	require.NoError(t, err)
	require.Equal(t, mac, got)
}

func TestParseMacAddressInvalid(t *testing.T) {
	_, err := ParseMacAddress("de:ad:be:ef:00")
	require.ErrorIs(t, err, ErrMalformedDeviceAddress)

	_, err = ParseMacAddress("zz:ad:be:ef:00:01")
	require.ErrorIs(t, err, ErrMalformedDeviceAddress)
}

func TestSocketEndpointRoundTrip(t *testing.T) {
	e := SocketEndpoint{IP: [4]byte{192, 0, 2, 5}, Port: 56700}
	str := e.String()
	require.Equal(t, "192.0.2.5:56700", str)

	got, err := ParseSocketEndpoint(str)
	require.NoError(t, err)
	require.Equal(t, e, got)
}

func TestDeviceAddressRoundTrip(t *testing.T) {
	a := DeviceAddress{
		Mac:      MacAddress{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01},
		Endpoint: SocketEndpoint{IP: [4]byte{192, 0, 2, 5}, Port: 56700},
	}
	str := a.String()
	require.Equal(t, "de:ad:be:ef:00:01#192.0.2.5:56700", str)

	got, err := ParseDeviceAddress(str)
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestParseDeviceAddressErrors(t *testing.T) {
	cases := []string{
		"de:ad:be:ef:00:01",
		"de:ad:be:ef:00:01#not-a-socket",
		"de:ad:be:ef:00:01#192.0.2.5:56700#extra",
	}
	for _, c := range cases {
		_, err := ParseDeviceAddress(c)
		require.Errorf(t, err, "expected error for %q", c)
	}
}

func TestDeviceAddressValidRoundTrip(t *testing.T) {
	const s = "de:ad:be:ef:00:01#192.0.2.5:56700"
	got, err := ParseDeviceAddress(s)
	require.NoError(t, err)
	require.Equal(t, s, got.String())
}
