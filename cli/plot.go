package cli

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/pursuit/spatialmath"
	"go.viam.com/pursuit/spline"
)

var (
	pathColor   = color.RGBA{B: 255, A: 255}
	drivenColor = color.RGBA{R: 255, A: 255}
)

// savePlot draws the path points and the line traced by the driven poses as a PNG.
func savePlot(filename string, path []spline.PathPoint, poses []spatialmath.Pose2D) error {
	pathData := make(plotter.XYs, len(path))
	for i, p := range path {
		pathData[i].X = p.Position.X
		pathData[i].Y = p.Position.Y
	}
	drivenData := make(plotter.XYs, len(poses))
	for i, p := range poses {
		drivenData[i].X = p.Point.X
		drivenData[i].Y = p.Point.Y
	}

	scatter, err := plotter.NewScatter(pathData)
	if err != nil {
		return err
	}
	scatter.Shape = draw.CircleGlyph{}
	scatter.Color = pathColor

	p := plot.New()
	p.Title.Text = "pure pursuit"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid(), scatter)
	p.Legend.Add("path", scatter)

	if len(drivenData) > 0 {
		line, err := plotter.NewLine(drivenData)
		if err != nil {
			return err
		}
		line.LineStyle.Color = drivenColor
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add("driven", line)
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}
