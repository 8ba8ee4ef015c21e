package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
	// cap on up-front allocation when the record count cannot be checked against the input size
	stlMaxPrealloc = 1 << 16
)

// stlTriangle is one binary STL record. binary.Read packs it into exactly 50 bytes.
type stlTriangle struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

// ReadBinarySTL parses a binary STL stream: an 80 byte header, a little-endian uint32 triangle
// count, then one 50 byte record per triangle. Each triangle gets its own three vertices; shared
// vertices are not merged. Input that ends before the declared number of records is an error.
// Bytes after the last record are ignored.
func ReadBinarySTL(r io.Reader) (*Mesh, error) {
	return readBinarySTL(r, -1)
}

// NewFromBinarySTLBytes parses an in-memory binary STL.
func NewFromBinarySTLBytes(data []byte) (*Mesh, error) {
	return readBinarySTL(bytes.NewReader(data), int64(len(data)))
}

// NewFromBinarySTLFile reads and parses a binary STL file.
func NewFromBinarySTLFile(path string) (*Mesh, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open stl file %q", path)
	}
	defer utils.UncheckedErrorFunc(f.Close)

	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	m, err := readBinarySTL(bufio.NewReader(f), size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse stl file %q", path)
	}
	return m, nil
}

// readBinarySTL parses from r. size is the total input length, or -1 if unknown.
func readBinarySTL(r io.Reader, size int64) (*Mesh, error) {
	header := make([]byte, stlHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(err, "stl input too short for header")
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "stl input too short for triangle count")
	}
	if size >= 0 {
		need := int64(stlHeaderSize) + 4 + int64(count)*stlTriangleSize
		if size < need {
			return nil, errors.Errorf("stl declares %d triangles (%d bytes) but input is %d bytes", count, need, size)
		}
	}

	prealloc := int(count)
	if size < 0 && prealloc > stlMaxPrealloc {
		prealloc = stlMaxPrealloc
	}
	m := &Mesh{
		Vertices:  make([]r3.Vector, 0, 3*prealloc),
		Triangles: make([]int, 0, 3*prealloc),
	}
	var rec stlTriangle
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, errors.Wrapf(err, "failed to read stl triangle %d of %d", i, count)
		}
		for _, v := range rec.Vertices {
			m.Triangles = append(m.Triangles, len(m.Vertices))
			m.Vertices = append(m.Vertices, r3.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
		}
	}
	return m, nil
}

// WriteBinarySTL writes m as a binary STL with facet normals computed from the winding.
func WriteBinarySTL(w io.Writer, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	header := make([]byte, stlHeaderSize)
	copy(header, "binary stl written by leatherman")
	if _, err := bw.Write(header); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.NumTriangles())); err != nil {
		return err
	}
	for _, tri := range m.Faces() {
		var rec stlTriangle
		n := tri.Normal()
		rec.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		for j, p := range tri.Points() {
			rec.Vertices[j] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}
