package mesh

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/leatherman/logging"
	"go.viam.com/leatherman/rospkg"
	"go.viam.com/leatherman/utils"
)

// ComponentsFromResource loads the mesh named by resource, which may be a package:// path, a
// file:// path or an absolute path. STL files are read as binary STL; DAE files are read as
// collada and scaled to meters by their unit declaration. The result is then scaled per axis by
// scale.
func ComponentsFromResource(resource string, scale r3.Vector, locator rospkg.Locator, logger logging.Logger) (*Mesh, error) {
	path, err := rospkg.Resolve(resource, locator)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve mesh resource %q", resource)
	}

	var m *Mesh
	switch ext := utils.Extension(path); ext {
	case "stl":
		m, err = NewFromBinarySTLFile(path)
	case "dae":
		m, err = NewFromColladaFile(path)
	default:
		return nil, errors.Errorf("unsupported mesh format %q for resource %q", ext, resource)
	}
	if err != nil {
		return nil, err
	}

	m.Scale(scale.X, scale.Y, scale.Z)
	logger.Debugw("loaded mesh",
		"resource", resource,
		"path", path,
		"vertices", len(m.Vertices),
		"triangles", m.NumTriangles(),
		"scale", scale,
	)
	return m, nil
}
