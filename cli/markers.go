package cli

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/leatherman/urdf"
	"go.viam.com/leatherman/utils"
	"go.viam.com/leatherman/viz"
)

// RemoveMarkersAction is the corresponding Action for 'markers remove'.
func RemoveMarkersAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	maxID, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return errors.Wrap(err, "max-id must be an integer")
	}
	return printJSON(c.App.Writer, viz.RemoveMarkerArray(c.Args().Get(0), maxID))
}

// CollisionMarkersAction is the corresponding Action for 'markers collision'.
func CollisionMarkersAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	env, err := envFor(c)
	if err != nil {
		return err
	}
	model, err := urdf.ParseModelXMLFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	obj, err := model.CollisionObject(c.Args().Get(1))
	if err != nil {
		return err
	}
	env.newLogger("leatherman.urdf").Debugw("collision object", "link", c.Args().Get(1),
		"primitives", len(obj.Primitives), "meshes", len(obj.Meshes)+len(obj.MeshResources))
	ma, err := viz.CollisionObjectMarkerArray(obj, c.IntSlice(hueFlag), c.String(namespaceFlag), 0)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, ma)
}

// PointsMarkersAction is the corresponding Action for 'markers points'.
func PointsMarkersAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	env, err := envFor(c)
	if err != nil {
		return err
	}
	pts, err := utils.ReadPointsInFile(c.Args().First())
	if err != nil {
		return err
	}
	env.newLogger("leatherman.viz").Debugw("read points", "file", c.Args().First(), "count", len(pts))
	m := viz.SpheresMarker(pts, c.Float64(radiusFlag), c.Int(hueFlag), c.String(frameFlag), c.String(namespaceFlag), 0)
	return printJSON(c.App.Writer, viz.MarkerArray{Markers: []viz.Marker{m}})
}
