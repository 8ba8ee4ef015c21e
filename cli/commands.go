package cli

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/leatherman/colors"
	"go.viam.com/leatherman/kinematics"
	"go.viam.com/leatherman/mesh"
	"go.viam.com/leatherman/rospkg"
	"go.viam.com/leatherman/urdf"
	"go.viam.com/leatherman/utils"
)

const defaultHue = 200

// MeshAction is the corresponding Action for 'mesh'.
func MeshAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	env, err := envFor(c)
	if err != nil {
		return err
	}
	scale, err := parseScale(c.String(scaleFlag))
	if err != nil {
		return err
	}
	resource := c.Args().First()
	m, err := mesh.ComponentsFromResource(resource, scale, env.locator, env.newLogger("leatherman.mesh"))
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Resource", "Vertices", "Triangles", "Surface Area"})
	t.AppendRow(table.Row{resource, len(m.Vertices), m.NumTriangles(), fmt.Sprintf("%.6f", m.SurfaceArea())})
	printf(c.App.Writer, "%s", t.Render())

	if out := c.Path(stlOutFlag); out != "" {
		if err := writeSTL(out, m, env); err != nil {
			return err
		}
		printf(c.App.Writer, "wrote %s", out)
	}
	return nil
}

func writeSTL(path string, m *mesh.Mesh, env *commandEnv) (err error) {
	if dir := utils.PathWithoutFilename(path); dir != path {
		if err := utils.CreateFolder(dir, env.logger); err != nil {
			return err
		}
	}
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create STL file")
	}
	// a failed write leaves no truncated STL behind
	guard := utils.NewGuard(func() { utils.RemoveFileNoError(path) })
	defer guard.OnFail()
	defer func() {
		err = multierr.Combine(err, f.Close())
		if err == nil {
			guard.Success()
		}
	}()
	return mesh.WriteBinarySTL(f, m)
}

// LimitsAction is the corresponding Action for 'limits'.
func LimitsAction(c *cli.Context) error {
	if err := checkArgs(c, 3); err != nil {
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
	limits, err := model.JointLimits(c.Args().Get(1), c.Args().Get(2))
	if err != nil {
		return err
	}
	env.newLogger("leatherman.urdf").Debugw("read joint limits", "robot", model.Name, "joints", len(limits))
	printf(c.App.Writer, "%s", limitsTable(limits, c.Bool(degreesFlag)))
	return nil
}

func limitsTable(limits []urdf.JointLimit, degrees bool) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Joint", "Type", "Min", "Max", "Velocity", "Effort"})
	for i, jl := range limits {
		lo, hi := jl.Min, jl.Max
		if degrees && jl.Type != kinematics.PrismaticJoint {
			lo, hi = utils.RadToDeg(lo), utils.RadToDeg(hi)
		}
		t.AppendRow(table.Row{i, jl.Name, jl.Type, formatLimit(lo), formatLimit(hi), jl.Velocity, jl.Effort})
	}
	return t.Render()
}

func formatLimit(v float64) string {
	if math.IsInf(v, 0) {
		return "unbounded"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// ResolveAction is the corresponding Action for 'resolve'.
func ResolveAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	env, err := envFor(c)
	if err != nil {
		return err
	}
	path, err := rospkg.Resolve(c.Args().First(), env.locator)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", path)
	return nil
}

// ColorAction is the corresponding Action for 'color'.
func ColorAction(c *cli.Context) error {
	if err := checkArgs(c, 3); err != nil {
		return err
	}
	var vals [3]float64
	for i := range vals {
		v, err := strconv.ParseFloat(c.Args().Get(i), 64)
		if err != nil {
			return errors.Wrapf(err, "argument %d", i+1)
		}
		vals[i] = v
	}
	env, err := envFor(c)
	if err != nil {
		return err
	}
	env.newLogger("leatherman.colors").Debugw("converting color", "rgb", c.Bool(rgbFlag), "values", vals)
	if c.Bool(rgbFlag) {
		h, s, v := colors.RGBToHSV(vals[0], vals[1], vals[2])
		printf(c.App.Writer, "%.4f %.4f %.4f", h, s, v)
		return nil
	}
	r, g, b := colors.HSVToRGB(vals[0], vals[1], vals[2])
	printf(c.App.Writer, "%.4f %.4f %.4f", r, g, b)
	return nil
}
