package cli

import (
	"fmt"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"go.viam.com/pursuit/services/pathfollow"
)

type sweepRun struct {
	lookahead float64
	result    *pathfollow.Result
	reached   bool
}

// SweepAction runs the scenario once per lookahead distance, concurrently, and prints a
// comparison. Each run owns its controller and base.
func SweepAction(c *cli.Context) (err error) {
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
	lookaheads := c.Float64Slice(sweepFlagLookaheads)
	runs := make([]sweepRun, len(lookaheads))

	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(runtime.NumCPU())
	for i, lookahead := range lookaheads {
		i, lookahead := i, lookahead
		g.Go(func() error {
			runScenario := *scenario
			runScenario.Controller.LookaheadDistance = lookahead
			if err := runScenario.Validate(fmt.Sprintf("lookahead %v", lookahead)); err != nil {
				return err
			}
			sim, err := newSimulation(&runScenario, l)
			if err != nil {
				return err
			}
			res, err := sim.follower.Run(ctx)
			if err != nil && !errors.Is(err, pathfollow.ErrCycleLimit) {
				return err
			}
			runs[i] = sweepRun{lookahead: lookahead, result: res, reached: err == nil}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"Lookahead", "Reached", "Cycles", "Final pose", "Distance to goal"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.lookahead,
			run.reached,
			run.result.Cycles,
			run.result.Final.String(),
			fmt.Sprintf("%.4f", run.result.DistanceToGoal),
		})
	}
	t.Render()
	return nil
}
