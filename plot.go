package nanoplot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Colors used for successive curves on a single plot.
var Colors = []color.Color{
	color.RGBA{A: 255},
	color.RGBA{R: 255, A: 255},
	color.RGBA{B: 255, A: 255},
	color.RGBA{G: 180, A: 255},
	color.RGBA{R: 255, B: 255, A: 255},
	color.RGBA{R: 255, B: 127, G: 127, A: 255},
}

// ColorAt cycles through Colors.
func ColorAt(i int) color.Color {
	return Colors[i%len(Colors)]
}

// SaveH1D draws h with error bars and a statistics box into fname.
// The image format follows the file extension.
func SaveH1D(h *hbook.H1D, title, variable, fname string) error {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = axisLabel(variable)
	p.Y.Label.Text = "Entries"
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	hh := hplot.NewH1D(h, hplot.WithYErrBars(true), hplot.WithHInfo(hplot.HInfoSummary))
	hh.LineStyle.Color = color.Black
	hh.LineStyle.Width = vg.Points(1)
	p.Add(hh)

	return save(fname, func() error {
		return hplot.Save(p, 6*vg.Inch, 6*vg.Inch, fname)
	})
}

// SaveH2D draws h as a heat map with a color bar on its right.
func SaveH2D(h *hbook.H2D, title, xvar, yvar, fname string) error {
	grid := h.GridXYZ()
	zmax := 0.0
	nx, ny := grid.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			zmax = math.Max(zmax, grid.Z(i, j))
		}
	}
	if zmax == 0 {
		zmax = 1
	}

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(zmax)

	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = axisLabel(xvar)
	p.Y.Label.Text = axisLabel(yvar)
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	heatMap := plotter.NewHeatMap(grid, colorMap.Palette(255))
	heatMap.Min = 0
	heatMap.Max = zmax
	p.Add(heatMap)

	bar := plot.New()
	bar.Add(&plotter.ColorBar{ColorMap: colorMap, Vertical: true})
	bar.HideX()
	bar.Y.Padding = 0

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(fname), "."))
	c, err := draw.NewFormattedCanvas(7*vg.Inch, 6*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("could not create %q canvas: %w", format, err)
	}
	dc := draw.New(c)
	p.Draw(draw.Crop(dc, 0, -vg.Inch, 0, 0))
	bar.Draw(draw.Crop(dc, 6.2*vg.Inch, 0, 0, 0))

	return save(fname, func() error {
		f, err := os.Create(fname)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := c.WriteTo(f); err != nil {
			return err
		}
		return f.Close()
	})
}

func save(fname string, write func() error) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return fmt.Errorf("could not create output directory for %q: %w", fname, err)
	}
	if err := write(); err != nil {
		return fmt.Errorf("could not save %q: %w", fname, err)
	}
	return nil
}

func axisLabel(variable string) string {
	if label, ok := Label(variable); ok {
		return label
	}
	return variable
}
