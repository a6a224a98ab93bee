package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/pursuit/services/pathfollow"
)

// RunAction follows the scenario's path and prints a summary of the run.
func RunAction(c *cli.Context) (err error) {
	l, err := newLoggers(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, l.close())
	}()

	scenario, err := loadScenario(c)
	if err != nil {
		return err
	}
	plotFile := c.String(runFlagPlot)
	if plotFile != "" {
		scenario.Follow.RecordPoses = true
	}
	sim, err := newSimulation(scenario, l)
	if err != nil {
		return err
	}

	res, runErr := sim.follower.Run(c.Context)
	if res != nil {
		printRunSummary(c, sim, res)
		if plotFile != "" {
			if err := savePlot(plotFile, sim.path, res.Poses); err != nil {
				return multierr.Combine(runErr, err)
			}
			l.root.Infow("saved plot", "file", plotFile)
		}
	}
	return runErr
}

func printRunSummary(c *cli.Context, sim *simulation, res *pathfollow.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"Cycles", "Simulated (s)", "Final pose", "Distance to goal", "Path points", "Path length"})
	t.AppendRow(table.Row{
		res.Cycles,
		fmt.Sprintf("%.2f", float64(res.Cycles)*sim.base.TimeStep()),
		res.Final.String(),
		fmt.Sprintf("%.4f", res.DistanceToGoal),
		len(sim.path),
		fmt.Sprintf("%.4f", sim.path[len(sim.path)-1].ArcLength),
	})
	t.Render()
}
