package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDenormalizeBoundaries(t *testing.T) {
	require.Equal(t, uint16(0), denormalize(-1))
	require.Equal(t, uint16(0), denormalize(0))
	require.Equal(t, uint16(0xFFFF), denormalize(1))
	require.Equal(t, uint16(0xFFFF), denormalize(2))
}

func TestDegreesToU16Wraps(t *testing.T) {
	require.Equal(t, uint16(0), degreesToU16(0))
	require.Equal(t, degreesToU16(10), degreesToU16(370))
	require.Equal(t, degreesToU16(-10), degreesToU16(350))
}

func TestRGBGrayHasZeroSaturationAndHue(t *testing.T) {
	c := RGB(128, 128, 128)
	require.Equal(t, uint16(0), c.Saturation)
	require.Equal(t, uint16(0), c.Hue)
}

func TestRGBPureRed(t *testing.T) {
	c := RGB(255, 0, 0)
	require.Equal(t, uint16(0), c.Hue)
	require.Equal(t, uint16(0xFFFF), c.Saturation)
	require.Equal(t, uint16(0xFFFF), c.Brightness)
}

func TestToMillisBoundaries(t *testing.T) {
	require.Equal(t, uint32(0), toMillis(-1))
	require.Equal(t, ^uint32(0), toMillis(maxDuration+1))
	require.Equal(t, uint32(0), toMillis(0))
}

func TestColorToHSBKDefaultsKelvin(t *testing.T) {
	c := Color{Hue: 1, Saturation: 2, Brightness: 3}
	hsbk := c.ToHSBK()
	require.Equal(t, uint16(defaultKelvin), hsbk.Kelvin)

	k := uint16(4000)
	c.Kelvin = &k
	hsbk = c.ToHSBK()
	require.Equal(t, k, hsbk.Kelvin)
}
