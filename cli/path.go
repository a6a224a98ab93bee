package cli

import (
	"encoding/json"
	"fmt"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/pursuit/spline"
)

// PathAction prints the points of the scenario's path followed by their spacing statistics.
func PathAction(c *cli.Context) (err error) {
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
	_, path, err := generatePath(scenario, l.spline)
	if err != nil {
		return err
	}

	if c.Bool(pathFlagJSON) {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(path)
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"#", "X", "Y", "Arc length"})
	for i, p := range path {
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%.4f", p.Position.X),
			fmt.Sprintf("%.4f", p.Position.Y),
			fmt.Sprintf("%.4f", p.ArcLength),
		})
	}
	t.Render()

	stats, err := spline.SpacingStats(path)
	if err != nil {
		return err
	}
	printf(c, "spacing: mean %.4f, stddev %.4f, min %.4f, max %.4f\n", stats.Mean, stats.StdDev, stats.Min, stats.Max)
	bins := c.Int(pathFlagBins)
	if bins < 1 {
		bins = 1
	}
	return histogram.Fprint(c.App.Writer, histogram.Hist(bins, spacings(path)), histogram.Linear(40))
}

func spacings(path []spline.PathPoint) []float64 {
	gaps := make([]float64, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		gaps = append(gaps, path[i].ArcLength-path[i-1].ArcLength)
	}
	return gaps
}

func printf(c *cli.Context, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(c.App.Writer, format, a...)
}
