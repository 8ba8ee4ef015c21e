package utils

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestFilenameFromPath(t *testing.T) {
	test.That(t, FilenameFromPath("/a/b/c.stl", true), test.ShouldEqual, "c")
	test.That(t, FilenameFromPath("/a/b/c.stl", false), test.ShouldEqual, "c.stl")
	test.That(t, FilenameFromPath("c.tar.gz", true), test.ShouldEqual, "c.tar")
	test.That(t, FilenameFromPath("/a/b/", false), test.ShouldEqual, "")
	test.That(t, FilenameFromPath("noext", true), test.ShouldEqual, "noext")
}

func TestPathWithoutFilename(t *testing.T) {
	test.That(t, PathWithoutFilename("/a/b/c.stl"), test.ShouldEqual, "/a/b/")
	test.That(t, PathWithoutFilename("c.stl"), test.ShouldEqual, "c.stl")
	test.That(t, PathWithoutFilename("/c.stl"), test.ShouldEqual, "/")
}

func TestExtension(t *testing.T) {
	test.That(t, Extension("c.STL"), test.ShouldEqual, "stl")
	test.That(t, Extension("/a/b.c/mesh.Dae"), test.ShouldEqual, "dae")
	test.That(t, Extension("README"), test.ShouldEqual, "")
	test.That(t, Extension("trailing."), test.ShouldEqual, "")
}

func TestReplaceExtension(t *testing.T) {
	test.That(t, ReplaceExtension("mesh.dae", "stl"), test.ShouldEqual, "mesh.stl")
	test.That(t, ReplaceExtension("a.b.c", "d"), test.ShouldEqual, "a.b.d")
	test.That(t, ReplaceExtension("mesh", "stl"), test.ShouldEqual, "")
}

func TestTimeString(t *testing.T) {
	ts := time.Date(1993, time.June, 30, 21, 49, 8, 0, time.UTC)
	test.That(t, TimeString(ts), test.ShouldEqual, "Wed Jun 30 21:49:08")
	ts = time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	test.That(t, TimeString(ts), test.ShouldEqual, "Mon Jan  2 15:04:05")
}

func TestSpaceDelimitedStringToFloatSlice(t *testing.T) {
	test.That(t, SpaceDelimitedStringToFloatSlice("0 1.5  -2"), test.ShouldResemble, []float64{0, 1.5, -2})
	test.That(t, SpaceDelimitedStringToFloatSlice(""), test.ShouldBeEmpty)
	got := SpaceDelimitedStringToFloatSlice("1 x")
	test.That(t, len(got), test.ShouldEqual, 2)
	test.That(t, math.IsNaN(got[1]), test.ShouldBeTrue)
}

func TestMath(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, Float64AlmostEqual(1, 1.0001, 1e-3), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.01, 1e-3), test.ShouldBeFalse)
	test.That(t, Clamp(3, 0, 1), test.ShouldEqual, 1)
	test.That(t, Clamp(-3, 0, 1), test.ShouldEqual, 0)
	test.That(t, Square(3), test.ShouldEqual, 9)
}
