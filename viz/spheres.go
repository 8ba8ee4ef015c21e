package viz

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/leatherman/colors"
)

// SphereMarker draws a single sphere.
func SphereMarker(center r3.Vector, radius float64, hue int, frameID, ns string, id int) Marker {
	m := newMarker(frameID, ns, id, Sphere)
	m.Pose.Position = center
	m.Scale = uniformScale(2 * radius)
	m.Color = colors.Hue(hue)
	return m
}

// SpheresMarker draws equally sized spheres as one sphere list.
func SpheresMarker(centers []r3.Vector, radius float64, hue int, frameID, ns string, id int) Marker {
	m := newMarker(frameID, ns, id, SphereList)
	m.Points = append([]r3.Vector(nil), centers...)
	m.Scale = uniformScale(2 * radius)
	m.Color = colors.Hue(hue)
	return m
}

// SphereRowsMarker is SpheresMarker for rows of {x, y, z, ...}.
func SphereRowsMarker(rows [][]float64, radius float64, hue int, frameID, ns string, id int) (Marker, error) {
	centers := make([]r3.Vector, 0, len(rows))
	for i := range rows {
		pt, err := rowPoint(rows, i, 3)
		if err != nil {
			return Marker{}, err
		}
		centers = append(centers, pt)
	}
	return SpheresMarker(centers, radius, hue, frameID, ns, id), nil
}

// SpheresMarkerArray draws one sphere per row of {x, y, z, ...}, with radii parallel to rows,
// and consecutive ids starting at id.
func SpheresMarkerArray(rows [][]float64, radii []float64, hue int, frameID, ns string, id int) (MarkerArray, error) {
	if len(radii) != len(rows) {
		return MarkerArray{}, errors.Errorf("got %d radii for %d spheres", len(radii), len(rows))
	}
	var ma MarkerArray
	for i := range rows {
		pt, err := rowPoint(rows, i, 3)
		if err != nil {
			return MarkerArray{}, err
		}
		ma.Append(SphereMarker(pt, radii[i], hue, frameID, ns, id+i))
	}
	return ma, nil
}

// SpheresMarkerArrayWithHues draws one sphere per row of {x, y, z, radius}, colored by the
// parallel hues, with consecutive ids starting at id.
func SpheresMarkerArrayWithHues(rows [][]float64, hues []int, frameID, ns string, id int) (MarkerArray, error) {
	if len(hues) != len(rows) {
		return MarkerArray{}, errors.Errorf("got %d hues for %d spheres", len(hues), len(rows))
	}
	var ma MarkerArray
	for i := range rows {
		pt, err := rowPoint(rows, i, 4)
		if err != nil {
			return MarkerArray{}, err
		}
		ma.Append(SphereMarker(pt, rows[i][3], hues[i], frameID, ns, id+i))
	}
	return ma, nil
}
