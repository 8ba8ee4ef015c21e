package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPointsFileRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "points.txt")
	pts := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -0.5, Y: 0.25, Z: 10.125}}

	test.That(t, WritePointsToFile(file, pts), test.ShouldBeNil)
	contents, err := os.ReadFile(file)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldEqual, "1.0000, 2.0000, 3.0000\n-0.5000, 0.2500, 10.1250\n")

	read, err := ReadPointsInFile(file)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read, test.ShouldResemble, pts)

	// writes append
	test.That(t, WritePointsToFile(file, pts[:1]), test.ShouldBeNil)
	read, err = ReadPointsInFile(file)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(read), test.ShouldEqual, 3)
	test.That(t, read[2], test.ShouldResemble, pts[0])
}

func TestReadPointsInFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("blank lines", func(t *testing.T) {
		file := filepath.Join(dir, "blank.txt")
		test.That(t, os.WriteFile(file, []byte("\n1, 2, 3\n\n4,5,6"), 0o600), test.ShouldBeNil)
		pts, err := ReadPointsInFile(file)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pts, test.ShouldResemble, []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}})
	})

	t.Run("empty file", func(t *testing.T) {
		file := filepath.Join(dir, "empty.txt")
		test.That(t, os.WriteFile(file, nil, 0o600), test.ShouldBeNil)
		pts, err := ReadPointsInFile(file)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pts, test.ShouldBeEmpty)
	})

	t.Run("malformed", func(t *testing.T) {
		file := filepath.Join(dir, "bad.txt")
		test.That(t, os.WriteFile(file, []byte("1, 2, 3\n1, 2\n"), 0o600), test.ShouldBeNil)
		_, err := ReadPointsInFile(file)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "line 2")

		test.That(t, os.WriteFile(file, []byte("a, b, c\n"), 0o600), test.ShouldBeNil)
		_, err = ReadPointsInFile(file)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadPointsInFile(filepath.Join(dir, "missing.txt"))
		test.That(t, err, test.ShouldNotBeNil)
	})
}
