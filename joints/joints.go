// Package joints searches, extracts and updates joint values in joint-state messages.
package joints

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/leatherman/msgs"
)

// MissingJointsError is returned when a joint state does not name every requested joint.
type MissingJointsError struct {
	Names []string
}

func (e *MissingJointsError) Error() string {
	return fmt.Sprintf("joint state is missing joints: %s", strings.Join(e.Names, ", "))
}

// IsValidJointState reports whether the state names at least one joint, has exactly one
// position per name, and carries velocity and effort blocks that are either empty or also one
// per name.
func IsValidJointState(state msgs.JointState) bool {
	n := len(state.Name)
	if n == 0 || len(state.Position) != n {
		return false
	}
	if len(state.Velocity) != 0 && len(state.Velocity) != n {
		return false
	}
	if len(state.Effort) != 0 && len(state.Effort) != n {
		return false
	}
	return true
}

// FindJointPosition returns the position of the joint called `name`.
func FindJointPosition(state msgs.JointState, name string) (float64, bool) {
	idx := lo.IndexOf(state.Name, name)
	if idx < 0 || idx >= len(state.Position) {
		return 0, false
	}
	return state.Position[idx], true
}

// JointPositions returns the positions of `names`, in that order. If any name is absent the
// result is a *MissingJointsError listing all of them.
func JointPositions(state msgs.JointState, names []string) ([]float64, error) {
	positions, missing := JointPositionsWithMissing(state, names)
	if len(missing) > 0 {
		return nil, &MissingJointsError{Names: missing}
	}
	return positions, nil
}

// JointPositionsWithMissing returns the positions of the joints in `names` that the state has,
// in request order, together with the names it does not have.
func JointPositionsWithMissing(state msgs.JointState, names []string) (positions []float64, missing []string) {
	positions = make([]float64, 0, len(names))
	for _, name := range names {
		pos, ok := FindJointPosition(state, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		positions = append(positions, pos)
	}
	return positions, missing
}

// FindAndReplaceJointPosition sets the position of joint `name` in state, appending the joint if
// it is not present yet.
func FindAndReplaceJointPosition(name string, position float64, state *msgs.JointState) {
	if idx := lo.IndexOf(state.Name, name); idx >= 0 && idx < len(state.Position) {
		state.Position[idx] = position
		return
	}
	state.Name = append(state.Name, name)
	state.Position = append(state.Position, position)
	// keep optional blocks aligned with the names
	if len(state.Velocity) != 0 {
		state.Velocity = append(state.Velocity, 0)
	}
	if len(state.Effort) != 0 {
		state.Effort = append(state.Effort, 0)
	}
}

// MultiDOFPose returns the transform from frameID to childFrameID carried by state as a pose.
func MultiDOFPose(state msgs.MultiDOFJointState, frameID, childFrameID string) (msgs.Pose, error) {
	if state.Header.FrameID == frameID {
		for i, name := range state.JointNames {
			if name == childFrameID && i < len(state.Transforms) {
				return state.Transforms[i].Pose(), nil
			}
		}
	}
	return msgs.Pose{}, errors.Errorf("no transform from %q to %q in multi-DOF joint state", frameID, childFrameID)
}
