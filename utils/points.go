package utils

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// WritePointsToFile appends one "x, y, z" line per point to the file `name`, creating it if
// needed. Coordinates are written with four decimal places.
func WritePointsToFile(name string, pts []r3.Vector) (err error) {
	//nolint:gosec
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open %q for writing", name)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	w := bufio.NewWriter(f)
	for _, pt := range pts {
		if _, err := fmt.Fprintf(w, "%1.4f, %1.4f, %1.4f\n", pt.X, pt.Y, pt.Z); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadPointsInFile reads a file written by WritePointsToFile. Blank lines are skipped; any other
// line that is not three comma-separated numbers fails the whole read.
func ReadPointsInFile(name string) ([]r3.Vector, error) {
	//nolint:gosec
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q for reading", name)
	}
	defer utils.UncheckedErrorFunc(f.Close)

	var pts []r3.Vector
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pt, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing %q line %d", name, lineNum)
		}
		pts = append(pts, pt)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %q", name)
	}
	return pts, nil
}

func parsePoint(line string) (r3.Vector, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return r3.Vector{}, errors.Errorf("expected 3 comma-separated values, got %d", len(fields))
	}
	var xyz [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return r3.Vector{}, err
		}
		xyz[i] = v
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
