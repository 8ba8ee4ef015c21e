// Package cli contains the leatherman command line tool: mesh inspection, URDF joint limits,
// package resolution, color conversion and marker generation.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	configFlag    = "config"
	debugFlag     = "debug"
	scaleFlag     = "scale"
	stlOutFlag    = "stl-out"
	degreesFlag   = "degrees"
	rgbFlag       = "rgb"
	hueFlag       = "hue"
	radiusFlag    = "radius"
	frameFlag     = "frame"
	namespaceFlag = "ns"
	fromFlag      = "from"
	toFlag        = "to"
	namesFlag     = "names"
	numPointsFlag = "points"
	durationFlag  = "duration"
	outFlag       = "out"
)

var app = &cli.App{
	Name:            "leatherman",
	Usage:           "inspect robot descriptions, meshes and markers",
	HideHelpCommand: true,
	Before:          beforeCommand,
	After:           afterCommand,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "mesh",
			Usage:     "load a binary STL or collada mesh and print its size",
			ArgsUsage: "<resource>",
			UsageText: "leatherman mesh [--scale x,y,z] [--stl-out FILE] <package://pkg/path.stl | /abs/path.dae>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  scaleFlag,
					Usage: "scale applied to the vertices, either one factor or x,y,z",
					Value: "1",
				},
				&cli.PathFlag{
					Name:  stlOutFlag,
					Usage: "write the scaled mesh as binary STL to `FILE`",
				},
			},
			Action: MeshAction,
		},
		{
			Name:      "limits",
			Usage:     "print the limits of the movable joints between two links of a URDF",
			ArgsUsage: "<urdf> <root-link> <tip-link>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  degreesFlag,
					Usage: "print revolute limits in degrees",
				},
			},
			Action: LimitsAction,
		},
		{
			Name:      "resolve",
			Usage:     "resolve a package:// resource to a path on disk",
			ArgsUsage: "<resource>",
			Action:    ResolveAction,
		},
		{
			Name:      "color",
			Usage:     "convert HSV to RGB, or RGB to HSV with --rgb",
			ArgsUsage: "<h> <s> <v>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  rgbFlag,
					Usage: "treat the arguments as r g b and print h s v",
				},
			},
			Action: ColorAction,
		},
		{
			Name:      "interpolate",
			Usage:     "write a joint trajectory interpolated between two joint positions",
			UsageText: "leatherman interpolate --names a,b --from 0,0 --to 1,1 [--points 10] [--duration 2s] [--out FILE]",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:     namesFlag,
					Usage:    "joint names",
					Required: true,
				},
				&cli.StringFlag{
					Name:     fromFlag,
					Usage:    "comma separated start positions",
					Required: true,
				},
				&cli.StringFlag{
					Name:     toFlag,
					Usage:    "comma separated end positions",
					Required: true,
				},
				&cli.IntFlag{
					Name:  numPointsFlag,
					Usage: "number of trajectory points",
					Value: 10,
				},
				&cli.DurationFlag{
					Name:  durationFlag,
					Usage: "time from start of the last point",
					Value: defaultTrajectoryDuration,
				},
				&cli.PathFlag{
					Name:  outFlag,
					Usage: "write the trajectory to `FILE` instead of printing it",
				},
			},
			Action: InterpolateAction,
		},
		{
			Name:            "markers",
			Usage:           "print visualization markers as JSON",
			HideHelpCommand: true,
			Subcommands: []*cli.Command{
				{
					Name:      "remove",
					Usage:     "delete markers [0, max-id) of a namespace",
					ArgsUsage: "<ns> <max-id>",
					Action:    RemoveMarkersAction,
				},
				{
					Name:      "collision",
					Usage:     "draw the collision geometry of a URDF link",
					ArgsUsage: "<urdf> <link>",
					Flags: []cli.Flag{
						&cli.IntSliceFlag{
							Name:  hueFlag,
							Usage: "hue per shape, or one hue for all",
							Value: cli.NewIntSlice(defaultHue),
						},
						&cli.StringFlag{
							Name:  namespaceFlag,
							Usage: "marker namespace",
							Value: "collision",
						},
					},
					Action: CollisionMarkersAction,
				},
				{
					Name:      "points",
					Usage:     "draw the points of a points file as spheres",
					ArgsUsage: "<file>",
					Flags: []cli.Flag{
						&cli.Float64Flag{
							Name:  radiusFlag,
							Usage: "sphere radius",
							Value: 0.01,
						},
						&cli.IntFlag{
							Name:  hueFlag,
							Usage: "sphere hue",
							Value: defaultHue,
						},
						&cli.StringFlag{
							Name:  frameFlag,
							Usage: "frame the points are expressed in",
							Value: "map",
						},
						&cli.StringFlag{
							Name:  namespaceFlag,
							Usage: "marker namespace",
							Value: "points",
						},
					},
					Action: PointsMarkersAction,
				},
			},
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
