package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/leatherman/msgs"
)

// WriteJointTrajectory writes one line per trajectory point to w. Each line starts with
// "<index>, time_from_start, <seconds>, " and is followed by the non-empty positions,
// velocities and accelerations blocks, each introduced by its name. Every number is written
// with four decimal places and followed by ", ".
func WriteJointTrajectory(w io.Writer, traj msgs.JointTrajectory) error {
	bw := bufio.NewWriter(w)
	for i, pt := range traj.Points {
		fmt.Fprintf(bw, "%d, time_from_start, %1.4f, ", i, pt.TimeFromStart.Seconds())
		writeBlock(bw, "positions", pt.Positions)
		writeBlock(bw, "velocities", pt.Velocities)
		writeBlock(bw, "accelerations", pt.Accelerations)
		bw.WriteString("\n")
	}
	// bufio.Writer keeps the first write error and returns it from Flush.
	return bw.Flush()
}

func writeBlock(w *bufio.Writer, name string, values []float64) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(w, "%s, ", name)
	for _, v := range values {
		fmt.Fprintf(w, "%1.4f, ", v)
	}
}

// WriteJointTrajectoryToFile truncates or creates the file `name` and writes traj to it.
func WriteJointTrajectoryToFile(name string, traj msgs.JointTrajectory) (err error) {
	//nolint:gosec
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "failed to open %q for writing", name)
	}
	guard := NewGuard(func() { RemoveFileNoError(name) })
	defer guard.OnFail()
	defer func() {
		err = multierr.Combine(err, f.Close())
		if err == nil {
			guard.Success()
		}
	}()
	return WriteJointTrajectory(f, traj)
}
