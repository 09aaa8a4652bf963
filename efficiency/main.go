package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/decibelcooper/nanoplot"
	"github.com/decibelcooper/nanoplot/efftable"
)

var (
	tmplFile = flag.String("template", "", "CSV table template (default is a blank table)")
	outCSV   = flag.String("o", "FI.csv", "output table")
	outXLSX  = flag.String("xlsx", "", "also write the table to this spreadsheet")
	outPlot  = flag.String("output", "plot.pdf", "efficiency plot")
	variable = flag.String("var", "EMID", "variable block the efficiencies are read from")
	title    = flag.String("title", "TTJETS Fall 17", "plot title")
	regions  = nanoplot.StringsFlag{Values: []string{"Iron1", "Long1", "IronFake"}}
)

func init() {
	flag.Var(&regions, "regions", "comma separated regions to plot")
}

const (
	sigFlavor = "Flav1"
	bkgFlavor = "Flav0"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <entries-csv>

options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("efficiency: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	table, err := loadTable(*tmplFile)
	if err != nil {
		log.Fatal(err)
	}
	n, err := fill(table, flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("filled %d entries", n)

	if err := writeCSV(table, *outCSV); err != nil {
		log.Fatal(err)
	}
	if *outXLSX != "" {
		if err := table.WriteXLSX(*outXLSX); err != nil {
			log.Fatal(err)
		}
	}

	sig, err := efftable.Curves(table, *variable, sigFlavor, regions.Values)
	if err != nil {
		log.Fatal(err)
	}
	bkg, err := efftable.Curves(table, *variable, bkgFlavor, regions.Values)
	if err != nil {
		log.Fatal(err)
	}
	printCurves(os.Stdout, append(sig, bkg...))

	if err := savePlot(*outPlot, *title, sig, bkg); err != nil {
		log.Fatal(err)
	}
}

func loadTable(fname string) (*efftable.Table, error) {
	if fname == "" {
		return efftable.NewBlank(), nil
	}
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open template: %w", err)
	}
	defer f.Close()
	return efftable.ReadCSV(f)
}

func fill(table *efftable.Table, fname string) (int, error) {
	f, err := os.Open(fname)
	if err != nil {
		return 0, fmt.Errorf("could not open entries: %w", err)
	}
	defer f.Close()

	n, err := table.Fill(f)
	if err != nil {
		return n, fmt.Errorf("could not fill table from %q: %w", fname, err)
	}
	return n, nil
}

func writeCSV(table *efftable.Table, fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create table: %w", err)
	}
	defer f.Close()

	if err := table.WriteCSV(f); err != nil {
		return fmt.Errorf("could not write %q: %w", fname, err)
	}
	return f.Close()
}

func printCurves(w io.Writer, curves []efftable.Curve) {
	for _, c := range curves {
		fmt.Fprintf(w, "%s:\n", c.Name)
		for i := range c.X {
			if math.IsNaN(c.Y[i]) {
				fmt.Fprintf(w, "  pt=%5.1f  eff=%8s\n", c.X[i], "n/a")
				continue
			}
			fmt.Fprintf(w, "  pt=%5.1f  eff=%8.4f +- %.4f\n", c.X[i], c.Y[i], c.Err[i])
		}
	}
}

// savePlot draws the signal curves with filled markers and the background
// ones with open markers, one color per region.
func savePlot(fname, title string, sig, bkg []efftable.Curve) error {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "Electron pT [GeV]"
	p.Y.Label.Text = "Efficiency"
	p.X.Min, p.X.Max = 0, 20
	p.Y.Min = 0
	p.X.Tick.Marker = nanoplot.PreciseTicks{NSuggestedTicks: 5}
	p.Legend.Top = true

	add := func(i int, c efftable.Curve, shape draw.GlyphDrawer) {
		s := c.S2D()
		if s.Len() == 0 {
			return
		}
		pts := hplot.NewS2D(s, hplot.WithXErrBars(true), hplot.WithYErrBars(true))
		pts.GlyphStyle.Shape = shape
		pts.GlyphStyle.Color = nanoplot.ColorAt(i)
		pts.GlyphStyle.Radius = vg.Points(2.5)
		pts.XErrs.LineStyle.Color = nanoplot.ColorAt(i)
		pts.YErrs.LineStyle.Color = nanoplot.ColorAt(i)
		p.Add(pts)
		p.Legend.Add(c.Name, pts)
	}
	for i, c := range sig {
		add(i, c, draw.CircleGlyph{})
	}
	for i, c := range bkg {
		add(i, c, draw.RingGlyph{})
	}

	if dir := filepath.Dir(fname); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create output directory: %w", err)
		}
	}
	if err := hplot.Save(p, 6*vg.Inch, 5*vg.Inch, fname); err != nil {
		return fmt.Errorf("could not save %q: %w", fname, err)
	}
	return nil
}
