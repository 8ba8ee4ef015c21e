package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/leatherman/mesh"
	"go.viam.com/leatherman/utils"
	"go.viam.com/leatherman/viz"
)

const testURDF = `<robot name="two_link">
  <link name="base"/>
  <link name="upper">
    <collision><geometry><box size="0.1 0.1 0.5"/></geometry></collision>
  </link>
  <link name="lower"/>
  <joint name="shoulder" type="revolute">
    <parent link="base"/><child link="upper"/>
    <limit lower="-1.5707963267948966" upper="1.5707963267948966" effort="10" velocity="1"/>
  </joint>
  <joint name="elbow" type="continuous">
    <parent link="upper"/><child link="lower"/>
  </joint>
</robot>`

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"leatherman"}, args...))
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestColorCommand(t *testing.T) {
	out, _, err := runApp(t, "color", "120", "1", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.TrimSpace(out), test.ShouldEqual, "0.0000 1.0000 0.0000")

	out, _, err = runApp(t, "color", "--rgb", "1", "1", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.TrimSpace(out), test.ShouldEqual, "60.0000 1.0000 1.0000")

	_, _, err = runApp(t, "color", "120", "1")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = runApp(t, "color", "red", "1", "1")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLimitsCommand(t *testing.T) {
	urdfPath := writeFile(t, "arm.urdf", testURDF)

	out, _, err := runApp(t, "limits", urdfPath, "base", "lower")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "shoulder")
	test.That(t, out, test.ShouldContainSubstring, "-1.5708")
	test.That(t, out, test.ShouldContainSubstring, "unbounded")

	out, _, err = runApp(t, "limits", "--degrees", urdfPath, "base", "lower")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "90.0000")

	_, _, err = runApp(t, "limits", urdfPath, "base", "missing")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGlobalFlagsApplyToEveryCommand(t *testing.T) {
	urdfPath := writeFile(t, "arm.urdf", testURDF)

	_, errOut, err := runApp(t, "--debug", "limits", urdfPath, "base", "lower")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "read joint limits")

	_, errOut, err = runApp(t, "limits", urdfPath, "base", "lower")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldNotContainSubstring, "read joint limits")

	_, errOut, err = runApp(t, "--debug", "color", "120", "1", "1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "converting color")

	_, _, err = runApp(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "color", "120", "1", "1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot read config")

	logPath := filepath.Join(t.TempDir(), "leatherman.log")
	cfgPath := writeFile(t, "leatherman.json", `{"log_file": "`+logPath+`", "ignore_environment": true}`)
	_, _, err = runApp(t, "--config", cfgPath, "--debug", "interpolate", "--names", "a", "--from", "0", "--to", "1", "--points", "2")
	test.That(t, err, test.ShouldBeNil)
	_, _, err = runApp(t, "--config", cfgPath, "--debug", "markers", "collision", urdfPath, "upper")
	test.That(t, err, test.ShouldBeNil)
	logged, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(logged), test.ShouldContainSubstring, "interpolated trajectory")
	test.That(t, string(logged), test.ShouldContainSubstring, "collision object")
}

func TestResolveCommand(t *testing.T) {
	pkgDir := t.TempDir()
	cfgPath := writeFile(t, "leatherman.json",
		`{"packages": {"arm_description": "`+pkgDir+`"}, "ignore_environment": true}`)

	out, _, err := runApp(t, "--config", cfgPath, "resolve", "package://arm_description/urdf/arm.urdf")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.TrimSpace(out), test.ShouldEqual, filepath.Join(pkgDir, "urdf", "arm.urdf"))

	_, _, err = runApp(t, "--config", cfgPath, "resolve", "package://unknown/urdf/arm.urdf")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "resolve", "package://a/b")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMeshCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tri.stl")
	m := &mesh.Mesh{
		Vertices:  []r3.Vector{{}, {X: 1000}, {Y: 1000}},
		Triangles: []int{0, 1, 2},
	}
	f, err := os.Create(src)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mesh.WriteBinarySTL(f, m), test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)

	dst := filepath.Join(dir, "scaled", "tri.stl")
	out, errOut, err := runApp(t, "--debug", "mesh", "--scale", "0.001", "--stl-out", dst, src)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "0.500000")
	test.That(t, errOut, test.ShouldContainSubstring, "loaded mesh")

	scaled, err := mesh.NewFromBinarySTLFile(dst)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scaled.NumTriangles(), test.ShouldEqual, 1)
	test.That(t, scaled.SurfaceArea(), test.ShouldAlmostEqual, 0.5, 1e-6)

	logPath := filepath.Join(dir, "logs", "leatherman.log")
	cfgPath := writeFile(t, "leatherman.json", `{"log_file": "`+logPath+`", "ignore_environment": true}`)
	_, _, err = runApp(t, "--config", cfgPath, "--debug", "mesh", src)
	test.That(t, err, test.ShouldBeNil)
	logged, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(logged), test.ShouldContainSubstring, "loaded mesh")

	_, _, err = runApp(t, "mesh", "--scale", "1,2", src)
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = runApp(t, "mesh", filepath.Join(dir, "tri.obj"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInterpolateCommand(t *testing.T) {
	out, _, err := runApp(t, "interpolate", "--names", "a,b", "--from", "0,0", "--to", "1,2", "--points", "3", "--duration", "1s")
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	test.That(t, lines, test.ShouldHaveLength, 3)
	test.That(t, lines[1], test.ShouldEqual, "1, time_from_start, 0.5000, positions, 0.5000, 1.0000, ")

	path := filepath.Join(t.TempDir(), "traj.txt")
	_, _, err = runApp(t, "interpolate", "--names", "a", "--from", "0", "--to", "1", "--points", "2", "--out", path)
	test.That(t, err, test.ShouldBeNil)
	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Count(string(data), "\n"), test.ShouldEqual, 2)

	_, _, err = runApp(t, "interpolate", "--names", "a,b", "--from", "0", "--to", "1,2")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMarkersCommands(t *testing.T) {
	t.Run("remove", func(t *testing.T) {
		out, _, err := runApp(t, "markers", "remove", "trajectory", "3")
		test.That(t, err, test.ShouldBeNil)
		var ma viz.MarkerArray
		test.That(t, json.Unmarshal([]byte(out), &ma), test.ShouldBeNil)
		test.That(t, ma.IDs(), test.ShouldResemble, []int{0, 1, 2})
		test.That(t, ma.Markers[0].Action, test.ShouldEqual, viz.Delete)

		_, _, err = runApp(t, "markers", "remove", "trajectory", "three")
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("collision", func(t *testing.T) {
		urdfPath := writeFile(t, "arm.urdf", testURDF)
		out, _, err := runApp(t, "markers", "collision", urdfPath, "upper")
		test.That(t, err, test.ShouldBeNil)
		var ma viz.MarkerArray
		test.That(t, json.Unmarshal([]byte(out), &ma), test.ShouldBeNil)
		test.That(t, ma.Markers, test.ShouldHaveLength, 1)
		test.That(t, ma.Markers[0].Type, test.ShouldEqual, viz.Cube)
		test.That(t, ma.Markers[0].Header.FrameID, test.ShouldEqual, "upper")
	})

	t.Run("points", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "points.txt")
		test.That(t, utils.WritePointsToFile(path, []r3.Vector{{X: 1}, {Y: 2}}), test.ShouldBeNil)
		out, _, err := runApp(t, "markers", "points", "--radius", "0.5", path)
		test.That(t, err, test.ShouldBeNil)
		var ma viz.MarkerArray
		test.That(t, json.Unmarshal([]byte(out), &ma), test.ShouldBeNil)
		test.That(t, ma.Markers[0].Type, test.ShouldEqual, viz.SphereList)
		test.That(t, ma.Markers[0].Points, test.ShouldResemble, []r3.Vector{{X: 1}, {Y: 2}})
		test.That(t, ma.Markers[0].Scale.X, test.ShouldEqual, 1.)
	})
}
