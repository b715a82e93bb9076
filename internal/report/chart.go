package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/user/taxfetch/internal/record"
)

// RenderChart draws sequence length against accession, longest first, and
// writes the plot as a PNG image at path. The input is not reordered; the
// chart works on a stable length-descending copy.
func RenderChart(records []record.Summary, path string) error {
	sorted := record.SortByLengthDesc(records)

	pts := make(plotter.XYs, len(sorted))
	labels := make([]string, len(sorted))
	for i, r := range sorted {
		pts[i].X = float64(i)
		pts[i].Y = float64(r.Length)
		labels[i] = r.Accession
	}

	p := plot.New()
	p.Title.Text = "Sequence Lengths by Accession"
	p.X.Label.Text = "Accession Number"
	p.Y.Label.Text = "Sequence Length"
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("build chart series: %w", err)
	}
	p.Add(line, points)

	// Save owns the render context for the duration of the call.
	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
