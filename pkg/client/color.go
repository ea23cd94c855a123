package client

import (
	"math"

	"github.com/kelcecil/lifxlan-go/internal/protocol"
)

// defaultKelvin is used whenever a Color's Kelvin has never been set and
// must be sent to a device, the midpoint of the documented 2500-9000K
// range.
const defaultKelvin = 5750

// Color is the client-facing HSBK representation. Unlike the wire Hsbk,
// Kelvin is optional: a Color built from hue/saturation/brightness alone
// (via RGB, or the named constants) carries no kelvin. ToHSBK, and so
// TransitionColor/SetColor, fill in defaultKelvin for it; the device's
// current kelvin is not read or kept.
type Color struct {
	Hue        uint16
	Saturation uint16
	Brightness uint16
	Kelvin     *uint16
}

// Named colors, ported from the reference client's const table: full
// brightness and no kelvin; White has zero saturation, the others full
// saturation at a fixed hue.
var (
	White   = Color{Brightness: 0xFFFF}
	Red     = fromHue(0x0000)
	Yellow  = fromHue(0x2AAA)
	Green   = fromHue(0x5555)
	Cyan    = fromHue(0x7FFF)
	Blue    = fromHue(0xAAAA)
	Magenta = fromHue(0xD555)
)

func fromHue(hue uint16) Color {
	return Color{Hue: hue, Saturation: 0xFFFF, Brightness: 0xFFFF}
}

// RGB builds a Color from 8-bit red/green/blue components using the
// standard HSB conversion: chroma-based saturation, max-channel hue
// branch, zero saturation/hue when the input is gray.
func RGB(r, g, b uint8) Color {
	rf, gf, bf := normalize(r), normalize(g), normalize(b)

	min := math.Min(math.Min(rf, gf), bf)
	max := math.Max(math.Max(rf, gf), bf)
	chroma := max - min
	brightness := max

	var saturation float64
	if brightness != 0 {
		saturation = chroma / brightness
	}

	var hueDegrees float64
	switch {
	case chroma == 0:
		hueDegrees = 0
	case max == rf:
		hueDegrees = 60 * (0 + (gf-bf)/chroma)
	case max == gf:
		hueDegrees = 60 * (2 + (bf-rf)/chroma)
	default: // max == bf
		hueDegrees = 60 * (4 + (rf-gf)/chroma)
	}

	return Color{
		Hue:        degreesToU16(hueDegrees),
		Saturation: denormalize(saturation),
		Brightness: denormalize(brightness),
	}
}

// PlusDegrees returns a copy of c with its hue rotated by degrees
// (wrapping at 360).
func (c Color) PlusDegrees(degrees float64) Color {
	c.Hue += degreesToU16(degrees)
	return c
}

// WithHue returns a copy of c with hue set from a 0-360 degree value.
func (c Color) WithHue(degrees float64) Color {
	c.Hue = degreesToU16(degrees)
	return c
}

// WithSaturation returns a copy of c with saturation set from a 0-1
// fraction.
func (c Color) WithSaturation(fraction float64) Color {
	c.Saturation = denormalize(fraction)
	return c
}

// WithBrightness returns a copy of c with brightness set from a 0-1
// fraction.
func (c Color) WithBrightness(fraction float64) Color {
	c.Brightness = denormalize(fraction)
	return c
}

// WithKelvin returns a copy of c with an explicit kelvin value.
func (c Color) WithKelvin(kelvin uint16) Color {
	c.Kelvin = &kelvin
	return c
}

// ToHSBK converts c to the wire representation, defaulting Kelvin to
// defaultKelvin if it was never set.
func (c Color) ToHSBK() protocol.Hsbk {
	kelvin := uint16(defaultKelvin)
	if c.Kelvin != nil {
		kelvin = *c.Kelvin
	}
	return protocol.Hsbk{Hue: c.Hue, Saturation: c.Saturation, Brightness: c.Brightness, Kelvin: kelvin}
}

// colorFromHSBK converts a device-reported Hsbk into a Color, preserving
// the device's kelvin as present (never defaulted away).
func colorFromHSBK(h protocol.Hsbk) Color {
	kelvin := h.Kelvin
	return Color{Hue: h.Hue, Saturation: h.Saturation, Brightness: h.Brightness, Kelvin: &kelvin}
}

func normalize(n uint8) float64 {
	return float64(n) / 0xFF
}

// denormalize maps a fraction to its u16 wire encoding, clamping
// out-of-range input rather than wrapping or erroring.
func denormalize(n float64) uint16 {
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 0xFFFF
	default:
		return uint16(n * 0xFFFF)
	}
}

// degreesToU16 maps a (possibly negative, possibly >360) degree value
// onto the u16 hue encoding.
func degreesToU16(degrees float64) uint16 {
	scaled := math.Mod(math.Mod(degrees, 360)+360, 360)
	return denormalize(scaled / 360)
}
