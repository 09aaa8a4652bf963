package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/nanoplot"
	"github.com/decibelcooper/nanoplot/nanoaod"
)

var (
	outDir   = flag.String("o", "ROCPlots", "output directory")
	prefix   = flag.String("prefix", "TTJets", "prefix of the output files")
	treeName = flag.String("tree", "Events", "name of the input tree")
	coll     = flag.String("coll", "LowPtElectron", "electron collection")
	maxEvts  = flag.Int64("max", 0, "maximum number of events per file (0 reads all)")
	format   = flag.String("format", "pdf", "image format of the plots")
	ptLow    = flag.Float64("ptlow", 10, "lower edge of the pt window")
	ptHigh   = flag.Float64("pthigh", 20, "upper edge of the pt window")
	doProf   = flag.Bool("prof", false, "write a CPU profile")
)

var emidSpec = nanoplot.HistSpec{Var: "EMID", NBins: 22, Low: nanoaod.EMIDCut, High: 12}

const (
	sigFlav = nanoaod.FlavPrompt
	bkgFlav = nanoaod.FlavUnmatched
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <nanoaod-input-files>...

options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("lowpt_roc: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 || !(*ptHigh > *ptLow) {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *doProf {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	opts := nanoaod.ScanOptions{
		Tree:       *treeName,
		Collection: *coll,
		MaxEvents:  *maxEvts,
		Progress:   log.Default(),
	}
	window := nanoaod.Window{Name: nanoaod.WindowName(*ptLow, *ptHigh), Low: *ptLow, High: *ptHigh}
	groups, err := process(flag.Args(), window, opts)
	if err != nil {
		log.Fatal(err)
	}

	curves := make([]curve, 0, len(groups))
	for _, g := range groups {
		pts, err := nanoplot.ROC(g.sig, g.bkg)
		if err != nil {
			log.Printf("skipping %s: %v", g.name, err)
			continue
		}
		curves = append(curves, curve{name: g.name, pts: pts})
	}

	for _, c := range curves {
		fname := filepath.Join(*outDir, fmt.Sprintf("%s_%s_ROC.%s", *prefix, c.name, *format))
		if err := saveROC(fname, *prefix+"_"+c.name+"_"+window.Name, c); err != nil {
			log.Fatal(err)
		}
	}
	if len(curves) > 0 {
		fname := filepath.Join(*outDir, fmt.Sprintf("%s_ROC.%s", *prefix, *format))
		if err := saveROC(fname, *prefix+"_"+window.Name, curves...); err != nil {
			log.Fatal(err)
		}
	}

	fname := filepath.Join(*outDir, *prefix+"_roc.csv")
	if err := writePoints(fname, curves); err != nil {
		log.Fatal(err)
	}
	log.Printf("saved %d ROC curves to %s", len(curves), *outDir)
}

type group struct {
	name     string
	pass     func(e *nanoaod.Electron) bool
	sig, bkg *hbook.H1D
}

func newGroup(name string, pass func(e *nanoaod.Electron) bool) *group {
	return &group{
		name: name,
		pass: pass,
		sig:  emidSpec.New(name + "_" + nanoaod.FlavorName(sigFlav) + "_EMID"),
		bkg:  emidSpec.New(name + "_" + nanoaod.FlavorName(bkgFlav) + "_EMID"),
	}
}

// process histograms the embedded ID of signal and background electrons
// inside window, for the general selection and for each region.
func process(fnames []string, window nanoaod.Window, opts nanoaod.ScanOptions) ([]*group, error) {
	groups := []*group{newGroup("General", func(*nanoaod.Electron) bool { return true })}
	for _, r := range nanoaod.Regions {
		groups = append(groups, newGroup(r.Name, r.Pass))
	}

	err := nanoaod.ScanFiles(fnames, opts, func(evt *nanoaod.Event) error {
		for j := range evt.Electrons {
			e := &evt.Electrons[j]
			if !window.Contains(e.Pt) || !nanoaod.General(e) {
				continue
			}
			for _, g := range groups {
				if !g.pass(e) {
					continue
				}
				switch e.GenPartFlav {
				case sigFlav:
					g.sig.Fill(e.EmbeddedID, 1)
				case bkgFlav:
					g.bkg.Fill(e.EmbeddedID, 1)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

type curve struct {
	name string
	pts  plotter.XYs
}

func saveROC(fname, title string, curves ...curve) error {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.X.Tick.Marker = nanoplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = nanoplot.PreciseTicks{NSuggestedTicks: 5}
	p.Legend.Top = false
	p.Legend.Left = false

	for i, c := range curves {
		line, points, err := plotter.NewLinePoints(c.pts)
		if err != nil {
			return fmt.Errorf("could not draw %s: %w", c.name, err)
		}
		line.Color = nanoplot.ColorAt(i)
		line.Width = vg.Points(1)
		points.Color = nanoplot.ColorAt(i)
		points.Radius = vg.Points(1.5)
		p.Add(line, points)
		if len(curves) > 1 {
			p.Legend.Add(c.name, line)
		}
	}

	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}
	if err := hplot.Save(p, 6*vg.Inch, 6*vg.Inch, fname); err != nil {
		return fmt.Errorf("could not save %q: %w", fname, err)
	}
	return nil
}

// writePoints writes one "curve,point,bkgEff,sigEff" record per ROC point.
func writePoints(fname string, curves []curve) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create ROC points: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Curve", "Point", "BkgEff", "SigEff"}); err != nil {
		return fmt.Errorf("could not write ROC points: %w", err)
	}
	for _, c := range curves {
		for i, pt := range c.pts {
			rec := []string{
				c.name,
				strconv.Itoa(i),
				strconv.FormatFloat(pt.X, 'g', -1, 64),
				strconv.FormatFloat(pt.Y, 'g', -1, 64),
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("could not write ROC points: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("could not flush ROC points: %w", err)
	}
	return f.Close()
}
