package cli

import (
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/leatherman/joints"
	"go.viam.com/leatherman/msgs"
	"go.viam.com/leatherman/utils"
)

const defaultTrajectoryDuration = 2 * time.Second

// InterpolateAction is the corresponding Action for 'interpolate'.
func InterpolateAction(c *cli.Context) error {
	names := c.StringSlice(namesFlag)
	from, err := parseFloats(c.String(fromFlag))
	if err != nil {
		return err
	}
	to, err := parseFloats(c.String(toFlag))
	if err != nil {
		return err
	}
	if len(from) != len(names) || len(to) != len(names) {
		return errors.Errorf("got %d joint names, %d start and %d end positions", len(names), len(from), len(to))
	}

	points, err := joints.InterpolateTrajectoryPoints(
		msgs.JointTrajectoryPoint{Positions: from},
		msgs.JointTrajectoryPoint{Positions: to, TimeFromStart: c.Duration(durationFlag)},
		c.Int(numPointsFlag),
	)
	if err != nil {
		return err
	}
	traj := msgs.JointTrajectory{JointNames: names, Points: points}
	env, err := envFor(c)
	if err != nil {
		return err
	}
	env.newLogger("leatherman.joints").Debugw("interpolated trajectory", "joints", len(names), "points", len(points))

	if out := c.Path(outFlag); out != "" {
		return utils.WriteJointTrajectoryToFile(out, traj)
	}
	return utils.WriteJointTrajectory(c.App.Writer, traj)
}
