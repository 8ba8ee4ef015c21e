package viz

import (
	"github.com/golang/geo/r3"

	"go.viam.com/leatherman/colors"
	"go.viam.com/leatherman/msgs"
)

// LineMarker draws a line strip through points.
func LineMarker(points []r3.Vector, thickness float64, hue int, frameID, ns string, id int) Marker {
	m := newMarker(frameID, ns, id, LineStrip)
	m.Points = append([]r3.Vector(nil), points...)
	m.Scale = r3.Vector{X: thickness}
	m.Color = colors.Hue(hue)
	return m
}

// TextMarker draws text at pose, size being the height of an uppercase letter.
func TextMarker(pose msgs.Pose, text string, size float64, hue int, frameID, ns string, id int) Marker {
	return TextMarkerWithColor(pose, text, size, colors.Hue(hue), frameID, ns, id)
}

// TextMarkerWithColor is TextMarker with an explicit color.
func TextMarkerWithColor(pose msgs.Pose, text string, size float64, color msgs.ColorRGBA, frameID, ns string, id int) Marker {
	m := newMarker(frameID, ns, id, Text)
	m.Pose = pose
	m.Text = text
	m.Scale = r3.Vector{Z: size}
	m.Color = color
	return m
}
