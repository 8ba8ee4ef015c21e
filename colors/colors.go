// Package colors converts between HSV and RGB and builds the hue colors used by markers.
package colors

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"go.viam.com/leatherman/msgs"
)

// NormalizeHue maps any hue in degrees into [0, 360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// math.Mod of a tiny negative value can land exactly on 360
	if h >= 360 {
		h = 0
	}
	return h
}

// HSVToRGB converts a hue in degrees, and saturation and value in [0, 1], to RGB in [0, 1].
// Hues outside [0, 360) wrap around.
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	c := colorful.Hsv(NormalizeHue(h), s, v)
	return c.R, c.G, c.B
}

// RGBToHSV converts RGB in [0, 1] to a hue in [0, 360) and saturation and value in [0, 1].
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	h, s, v = colorful.Color{R: r, G: g, B: b}.Hsv()
	return NormalizeHue(h), s, v
}

// MsgRGBToHSV converts the color part of a message color to HSV. Alpha is ignored.
func MsgRGBToHSV(c msgs.ColorRGBA) (h, s, v float64) {
	return RGBToHSV(c.R, c.G, c.B)
}

// MsgHSVToRGB converts HSV to an opaque message color.
func MsgHSVToRGB(h, s, v float64) msgs.ColorRGBA {
	r, g, b := HSVToRGB(h, s, v)
	return msgs.ColorRGBA{R: r, G: g, B: b, A: 1}
}

// Hue returns the fully saturated, full value, opaque color for an integer hue in degrees.
func Hue(hue int) msgs.ColorRGBA {
	return MsgHSVToRGB(float64(hue), 1, 1)
}

// FromSlice builds a message color from {r, g, b} or {r, g, b, a}. A missing alpha is opaque.
func FromSlice(vals []float64) (msgs.ColorRGBA, bool) {
	switch len(vals) {
	case 3:
		return msgs.ColorRGBA{R: vals[0], G: vals[1], B: vals[2], A: 1}, true
	case 4:
		return msgs.ColorRGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, true
	default:
		return msgs.ColorRGBA{}, false
	}
}
