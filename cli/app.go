// Package cli contains the pursuit command line tool: generating paths, following them with a
// simulated base and comparing controller settings.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig   = "config"
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"
	generalFlagLogFile  = "log-file"

	scenarioFlagSet          = "set"
	scenarioFlagCoefficients = "coefficients"
	scenarioFlagSampling     = "sampling"
	scenarioFlagSpacing      = "spacing"
	scenarioFlagLookahead    = "lookahead"
	scenarioFlagMaxVelocity  = "max-velocity"
	scenarioFlagTrackWidth   = "track-width"
	scenarioFlagTimeStep     = "time-step"
	scenarioFlagTolerance    = "tolerance"
	scenarioFlagMaxCycles    = "max-cycles"

	runFlagPlot         = "plot"
	pathFlagJSON        = "json"
	pathFlagBins        = "bins"
	sweepFlagLookaheads = "lookaheads"
)

var scenarioFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    generalFlagConfig,
		Aliases: []string{"c"},
		Usage:   "load the scenario from `FILE`",
	},
	&cli.StringSliceFlag{
		Name:  scenarioFlagSet,
		Usage: "override a scenario field by json path, e.g. controller.curvature_gain=2",
	},
	&cli.StringFlag{
		Name:  scenarioFlagCoefficients,
		Usage: "spline coefficients: compat or hermite",
	},
	&cli.StringFlag{
		Name:  scenarioFlagSampling,
		Usage: "path sampling: resample or interpolate",
	},
	&cli.Float64Flag{
		Name:  scenarioFlagSpacing,
		Usage: "arc length between path points",
	},
	&cli.Float64Flag{
		Name:  scenarioFlagLookahead,
		Usage: "lookahead distance",
	},
	&cli.Float64Flag{
		Name:  scenarioFlagMaxVelocity,
		Usage: "max wheel velocity",
	},
	&cli.Float64Flag{
		Name:  scenarioFlagTrackWidth,
		Usage: "distance between the wheels",
	},
	&cli.Float64Flag{
		Name:  scenarioFlagTimeStep,
		Usage: "seconds simulated per control cycle",
	},
	&cli.Float64Flag{
		Name:  scenarioFlagTolerance,
		Usage: "distance from the goal that ends a run",
	},
	&cli.IntFlag{
		Name:  scenarioFlagMaxCycles,
		Usage: "control cycles before a run gives up",
	},
}

func withScenarioFlags(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, scenarioFlags...), flags...)
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut. Logs go to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "pursuit",
		Usage:           "generate quintic spline paths and follow them with a pure pursuit controller",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringSliceFlag{
				Name:  generalFlagLogLevel,
				Usage: "set the level of matching loggers, e.g. pursuit.control=debug or pursuit.*=warn",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to `FILE`, rotated as it grows",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "follow the scenario's path with a simulated differential drive base",
				Flags:  withScenarioFlags(&cli.StringFlag{Name: runFlagPlot, Usage: "save a PNG of the path and the driven poses to `FILE`"}),
				Action: RunAction,
			},
			{
				Name:  "path",
				Usage: "print the path generated from the scenario's spline",
				Flags: withScenarioFlags(
					&cli.BoolFlag{Name: pathFlagJSON, Usage: "print the points as json"},
					&cli.IntFlag{Name: pathFlagBins, Value: 8, Usage: "histogram bins for the point spacing"},
				),
				Action: PathAction,
			},
			{
				Name:  "sweep",
				Usage: "run the scenario once per lookahead distance and compare the runs",
				Flags: withScenarioFlags(&cli.Float64SliceFlag{
					Name:     sweepFlagLookaheads,
					Usage:    "lookahead distances to compare",
					Required: true,
				}),
				Action: SweepAction,
			},
			{
				Name:   "schema",
				Usage:  "print the json schema of scenario files",
				Action: SchemaAction,
			},
		},
	}
}
