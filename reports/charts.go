package reports

import (
	"image/color"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ============================================================================
// CHARTS — PNG rendering for the canned reports
// ============================================================================
// Each report writes one chart under a fixed filename in the plots directory.
// Charts are deterministic given the static dataset, so the last-writer-wins
// overwrite on concurrent requests is harmless.
// ============================================================================

// Chart color palette.
var (
	colorBlue   = color.RGBA{R: 0x4E, G: 0x79, B: 0xA7, A: 0xFF}
	colorGreen  = color.RGBA{R: 0x59, G: 0xA1, B: 0x4F, A: 0xFF}
	colorTeal   = color.RGBA{R: 0x76, G: 0xB7, B: 0xB2, A: 0xFF}
	colorPurple = color.RGBA{R: 0xB0, G: 0x7A, B: 0xA1, A: 0xFF}
)

const (
	chartWidth  = 9 * vg.Inch
	chartHeight = 5.5 * vg.Inch
)

// saveBarChart renders labeled bars to a PNG file.
func saveBarChart(path, title, xlabel, ylabel string, labels []string, values []float64, fill color.Color) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(40))
	if err != nil {
		return errors.Wrap(err, "building bar chart")
	}
	bars.Color = fill
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)

	return errors.Wrapf(p.Save(chartWidth, chartHeight, path), "saving chart %s", filepath.Base(path))
}

// saveHistogram renders a binned distribution to a PNG file.
func saveHistogram(path, title, xlabel, ylabel string, values []float64, bins int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	hist, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return errors.Wrap(err, "building histogram")
	}
	hist.FillColor = colorBlue

	p.Add(hist)

	return errors.Wrapf(p.Save(chartWidth, chartHeight, path), "saving chart %s", filepath.Base(path))
}
