package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/leatherman/logging"
	"go.viam.com/leatherman/rospkg"
)

func TestComponentsFromResource(t *testing.T) {
	logger := logging.NewTestLogger(t)
	pkgRoot := t.TempDir()
	test.That(t, os.MkdirAll(filepath.Join(pkgRoot, "meshes"), 0o750), test.ShouldBeNil)
	stlPath := filepath.Join(pkgRoot, "meshes", "part.STL")
	test.That(t, os.WriteFile(stlPath, buildSTL(t, twoTriangles, 2), 0o600), test.ShouldBeNil)
	daePath := filepath.Join(pkgRoot, "meshes", "square.dae")
	test.That(t, os.WriteFile(daePath, []byte(colladaDoc(`<unit meter="0.001"/>`, colladaTriangles)), 0o600), test.ShouldBeNil)
	test.That(t, os.WriteFile(filepath.Join(pkgRoot, "meshes", "part.obj"), nil, 0o600), test.ShouldBeNil)

	locator := rospkg.StaticLocator{"arm_description": pkgRoot}

	t.Run("package stl", func(t *testing.T) {
		m, err := ComponentsFromResource("package://arm_description/meshes/part.STL", r3.Vector{X: 2, Y: 2, Z: 2}, locator, logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, m.NumTriangles(), test.ShouldEqual, 2)
		test.That(t, m.Vertices[1], test.ShouldResemble, r3.Vector{X: 2})
	})

	t.Run("collada applies unit and scale", func(t *testing.T) {
		m, err := ComponentsFromResource("package://arm_description/meshes/square.dae", r3.Vector{X: 1, Y: 2, Z: 1}, locator, logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, m.Vertices[2].Distance(r3.Vector{X: 1, Y: 2}), test.ShouldAlmostEqual, 0)
	})

	t.Run("absolute path", func(t *testing.T) {
		m, err := ComponentsFromResource("file://"+stlPath, r3.Vector{X: 1, Y: 1, Z: 1}, nil, logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, m.NumTriangles(), test.ShouldEqual, 2)
	})

	t.Run("failures", func(t *testing.T) {
		_, err := ComponentsFromResource("package://gripper_description/meshes/part.stl", r3.Vector{X: 1, Y: 1, Z: 1}, locator, logger)
		test.That(t, err, test.ShouldNotBeNil)
		_, err = ComponentsFromResource("package://arm_description/meshes/part.obj", r3.Vector{X: 1, Y: 1, Z: 1}, locator, logger)
		test.That(t, err, test.ShouldNotBeNil)
		_, err = ComponentsFromResource("meshes/part.stl", r3.Vector{X: 1, Y: 1, Z: 1}, locator, logger)
		test.That(t, err, test.ShouldNotBeNil)
		_, err = ComponentsFromResource("package://arm_description/meshes/missing.stl", r3.Vector{X: 1, Y: 1, Z: 1}, locator, logger)
		test.That(t, err, test.ShouldNotBeNil)
	})
}
