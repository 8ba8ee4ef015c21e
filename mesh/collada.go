package mesh

import (
	"bufio"
	"encoding/xml"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	lmutils "go.viam.com/leatherman/utils"
)

// colladaDocument is the subset of a COLLADA file needed to pull out triangle geometry.
type colladaDocument struct {
	XMLName    xml.Name          `xml:"COLLADA"`
	Asset      colladaAsset      `xml:"asset"`
	Geometries []colladaGeometry `xml:"library_geometries>geometry"`
}

type colladaAsset struct {
	Unit *colladaUnit `xml:"unit"`
}

type colladaUnit struct {
	Meter string `xml:"meter,attr"`
	Name  string `xml:"name,attr"`
}

type colladaGeometry struct {
	ID   string       `xml:"id,attr"`
	Name string       `xml:"name,attr"`
	Mesh *colladaMesh `xml:"mesh"`
}

type colladaMesh struct {
	Sources   []colladaSource    `xml:"source"`
	Vertices  colladaVertices    `xml:"vertices"`
	Triangles []colladaPrimitive `xml:"triangles"`
	Polylists []colladaPrimitive `xml:"polylist"`
}

type colladaSource struct {
	ID         string `xml:"id,attr"`
	FloatArray struct {
		ID    string `xml:"id,attr"`
		Count int    `xml:"count,attr"`
		Data  string `xml:",chardata"`
	} `xml:"float_array"`
	Accessor struct {
		Count  int `xml:"count,attr"`
		Stride int `xml:"stride,attr"`
	} `xml:"technique_common>accessor"`
}

type colladaVertices struct {
	ID     string         `xml:"id,attr"`
	Inputs []colladaInput `xml:"input"`
}

type colladaInput struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   int    `xml:"offset,attr"`
}

type colladaPrimitive struct {
	Count  int            `xml:"count,attr"`
	Inputs []colladaInput `xml:"input"`
	VCount string         `xml:"vcount"`
	P      string         `xml:"p"`
}

// ColladaFileScale returns the meters-per-unit declared by <asset><unit meter="..."/> in the
// collada file at path. It returns 1.0 when the file cannot be read, has no unit declaration,
// or the declared value is not a positive number.
func ColladaFileScale(path string) float64 {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return 1.0
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return readColladaScale(bufio.NewReader(f))
}

// readColladaScale streams tokens up to the unit declaration so that large geometry libraries are
// never decoded.
func readColladaScale(r io.Reader) float64 {
	dec := xml.NewDecoder(r)
	inAsset := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return 1.0
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "asset":
				inAsset = true
			case "unit":
				if !inAsset {
					continue
				}
				for _, attr := range el.Attr {
					if attr.Name.Local == "meter" {
						return parseScale(attr.Value)
					}
				}
				return 1.0
			}
		case xml.EndElement:
			if el.Name.Local == "asset" {
				return 1.0
			}
		}
	}
}

func parseScale(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return 1.0
	}
	return v
}

// NewFromColladaFile reads the triangle geometry of a collada file, scaled to meters by its
// unit declaration.
func NewFromColladaFile(path string) (*Mesh, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open collada file %q", path)
	}
	defer utils.UncheckedErrorFunc(f.Close)
	m, err := ReadCollada(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse collada file %q", path)
	}
	return m, nil
}

// ReadCollada parses collada XML. Geometry from every <triangles> primitive, and from every
// <polylist> whose polygons are all triangles, is merged into one mesh. Vertex positions are
// multiplied by the unit scale. Scene graph transforms are not applied.
func ReadCollada(r io.Reader) (*Mesh, error) {
	var doc colladaDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode collada xml")
	}
	scale := 1.0
	if doc.Asset.Unit != nil {
		scale = parseScale(doc.Asset.Unit.Meter)
	}

	m := &Mesh{}
	for _, geom := range doc.Geometries {
		if geom.Mesh == nil {
			continue
		}
		if err := appendGeometry(m, geom.Mesh, scale); err != nil {
			return nil, errors.Wrapf(err, "geometry %q", geom.ID)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func appendGeometry(m *Mesh, cm *colladaMesh, scale float64) error {
	positions, err := cm.positions()
	if err != nil {
		return err
	}
	base := len(m.Vertices)
	for _, p := range positions {
		m.Vertices = append(m.Vertices, p.Mul(scale))
	}

	for _, prim := range cm.Triangles {
		indices, err := prim.vertexIndices(cm.Vertices.ID)
		if err != nil {
			return err
		}
		if err := appendTriangles(m, indices, base, len(positions)); err != nil {
			return err
		}
	}
	for _, prim := range cm.Polylists {
		counts, err := parseInts(prim.VCount)
		if err != nil {
			return errors.Wrap(err, "bad polylist vcount")
		}
		for _, c := range counts {
			if c != 3 {
				return errors.Errorf("polylist has a polygon with %d vertices; only triangles are supported", c)
			}
		}
		indices, err := prim.vertexIndices(cm.Vertices.ID)
		if err != nil {
			return err
		}
		if err := appendTriangles(m, indices, base, len(positions)); err != nil {
			return err
		}
	}
	return nil
}

func appendTriangles(m *Mesh, indices []int, base, numVertices int) error {
	if len(indices)%3 != 0 {
		return errors.Errorf("primitive has %d vertex indices, not a multiple of 3", len(indices))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= numVertices {
			return errors.Errorf("vertex index %d out of range [0, %d)", idx, numVertices)
		}
		m.Triangles = append(m.Triangles, base+idx)
	}
	return nil
}

// positions resolves the POSITION input of <vertices> to its float source.
func (cm *colladaMesh) positions() ([]r3.Vector, error) {
	var sourceID string
	for _, in := range cm.Vertices.Inputs {
		if in.Semantic == "POSITION" {
			sourceID = strings.TrimPrefix(in.Source, "#")
		}
	}
	if sourceID == "" {
		return nil, errors.New("mesh <vertices> has no POSITION input")
	}
	for _, src := range cm.Sources {
		if src.ID != sourceID {
			continue
		}
		stride := src.Accessor.Stride
		if stride == 0 {
			stride = 3
		}
		if stride < 3 {
			return nil, errors.Errorf("position source %q has stride %d, need at least 3", sourceID, stride)
		}
		values := lmutils.SpaceDelimitedStringToFloatSlice(src.FloatArray.Data)
		pts := make([]r3.Vector, 0, len(values)/stride)
		for i := 0; i+2 < len(values); i += stride {
			pt := r3.Vector{X: values[i], Y: values[i+1], Z: values[i+2]}
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsNaN(pt.Z) {
				return nil, errors.Errorf("position source %q has a non-numeric value", sourceID)
			}
			pts = append(pts, pt)
		}
		return pts, nil
	}
	return nil, errors.Errorf("position source %q not found", sourceID)
}

// vertexIndices pulls the VERTEX input's indices out of the interleaved <p> list.
func (prim *colladaPrimitive) vertexIndices(verticesID string) ([]int, error) {
	stride := 1
	vertexOffset := -1
	for _, in := range prim.Inputs {
		if in.Offset+1 > stride {
			stride = in.Offset + 1
		}
		if in.Semantic == "VERTEX" && strings.TrimPrefix(in.Source, "#") == verticesID {
			vertexOffset = in.Offset
		}
	}
	if vertexOffset < 0 {
		return nil, errors.New("primitive has no VERTEX input")
	}
	p, err := parseInts(prim.P)
	if err != nil {
		return nil, errors.Wrap(err, "bad primitive index list")
	}
	if len(p)%stride != 0 {
		return nil, errors.Errorf("primitive index list length %d is not a multiple of its %d inputs", len(p), stride)
	}
	indices := make([]int, 0, len(p)/stride)
	for i := vertexOffset; i < len(p); i += stride {
		indices = append(indices, p[i])
	}
	return indices, nil
}

func parseInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
