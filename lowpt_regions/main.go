package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/nanoplot"
	"github.com/decibelcooper/nanoplot/nanoaod"
)

var (
	outDir   = flag.String("o", "plots", "output directory")
	sample   = flag.String("sample", "TTJets", "sample name used in plot paths")
	treeName = flag.String("tree", "Events", "name of the input tree")
	coll     = flag.String("coll", "LowPtElectron", "electron collection")
	maxEvts  = flag.Int64("max", 150000, "maximum number of events per file (0 reads all)")
	format   = flag.String("format", "pdf", "image format of the plots")
	config   = flag.String("config", "", "YAML file overriding the histogram binning")
	no2D     = flag.Bool("no2d", false, "do not draw the Iron1 2D maps")
	doProf   = flag.Bool("prof", false, "write a CPU profile")
)

var edges nanoplot.FloatsFlag

func init() {
	flag.Var(&edges, "edges", "comma separated pt edges replacing the default windows")
}

// The pt binning follows each window and EMID starts at the region cut.
var defaultBooking = nanoplot.Booking{
	{Var: "EMID", NBins: 22, Low: nanoaod.EMIDCut, High: 12},
	{Var: "pt", NBins: 80, Low: 0, High: 20},
	{Var: "eta", NBins: 30, Low: -2.4, High: 2.4},
	{Var: "dxy", NBins: 25, Low: -0.05, High: 0.05},
	{Var: "dxyErr", NBins: 50, Low: 0, High: 0.02},
	{Var: "dz", NBins: 25, Low: -0.05, High: 0.05},
	{Var: "dzErr", NBins: 50, Low: 0, High: 0.06},
	{Var: "dxySig", NBins: 100, Low: -3, High: 3},
	{Var: "dzSig", NBins: 50, Low: -3, High: 3},
	{Var: "IP", NBins: 100, Low: 0, High: 0.01},
	{Var: "IPErr", NBins: 50, Low: -5, High: 5},
	{Var: "IPSig1", NBins: 100, Low: 0, High: 10},
	{Var: "IPSig2", NBins: 100, Low: 0, High: 10},
	{Var: "IPSigDiff", NBins: 50, Low: -5, High: 5},
	{Var: "CONV", NBins: 2, Low: 0, High: 2},
	{Var: "ISO", NBins: 50, Low: 0, High: 20},
}

var groups = map[string]string{
	"EMID":      "EMID",
	"pt":        "PT",
	"eta":       "ETA",
	"dxy":       "DXY",
	"dxyErr":    "DXY",
	"dxySig":    "DXY",
	"dz":        "DZ",
	"dzErr":     "DZ",
	"dzSig":     "DZ",
	"IP":        "IP",
	"IPErr":     "IP",
	"IPSig1":    "IP",
	"IPSig2":    "IP",
	"IPSigDiff": "IP",
	"CONV":      "CONV",
	"ISO":       "ISO",
}

// flavors split every selection; -1 keeps all flavors.
var flavors = []int{-1, nanoaod.FlavUnmatched, nanoaod.FlavPrompt, nanoaod.FlavBottom}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <nanoaod-input-files>...

options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("lowpt_regions: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *doProf {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	windows := nanoaod.DefaultWindows()
	if len(edges.Values) > 0 {
		var err error
		windows, err = nanoaod.EdgeWindows(edges.Values)
		if err != nil {
			log.Fatal(err)
		}
	}

	booking, err := nanoplot.LoadBooking(*config, defaultBooking)
	if err != nil {
		log.Fatal(err)
	}

	opts := nanoaod.ScanOptions{
		Tree:       *treeName,
		Collection: *coll,
		MaxEvents:  *maxEvts,
		Progress:   log.Default(),
	}
	ws, err := process(flag.Args(), windows, booking, opts)
	if err != nil {
		log.Fatal(err)
	}

	n, err := save(ws, *outDir, *sample, *format, !*no2D)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("saved %d plots to %s", n, *outDir)
}

// selection is one set of histograms of a window: the preselection or a
// region, restricted to a flavor or not.
type selection struct {
	suffix string
	region *nanoaod.Region
	flavor int
	hists  []*hbook.H1D
}

func (s *selection) accept(e *nanoaod.Electron) bool {
	if s.flavor >= 0 && e.GenPartFlav != s.flavor {
		return false
	}
	if s.region == nil {
		return true
	}
	return nanoaod.General(e) && s.region.Pass(e)
}

type map2D struct {
	xvar, yvar string
	h          *hbook.H2D
}

type windowHists struct {
	window  nanoaod.Window
	booking nanoplot.Booking
	sels    []*selection
	maps    []map2D
}

func newWindowHists(w nanoaod.Window, booking nanoplot.Booking) *windowHists {
	wh := &windowHists{window: w, booking: make(nanoplot.Booking, len(booking))}
	copy(wh.booking, booking)
	for i := range wh.booking {
		if wh.booking[i].Var == "pt" {
			wh.booking[i].Low = w.Low
			wh.booking[i].High = w.High
		}
	}

	regions := append([]*nanoaod.Region{nil}, regionPtrs()...)
	for _, region := range regions {
		for _, flav := range flavors {
			suffix := ""
			if region != nil {
				suffix += "_" + region.Name
			}
			if flav >= 0 {
				suffix += "_" + nanoaod.FlavorName(flav)
			}
			sel := &selection{suffix: suffix, region: region, flavor: flav}
			for _, spec := range wh.booking {
				sel.hists = append(sel.hists, spec.New(spec.Var+suffix))
			}
			wh.sels = append(wh.sels, sel)
		}
	}

	lo, hi := w.Low, w.High
	wh.maps = []map2D{
		{"pt", "EMID", hbook.NewH2D(20, lo, hi, 22, nanoaod.EMIDCut, 12)},
		{"pt", "eta", hbook.NewH2D(20, lo, hi, 30, -2.4, 2.4)},
		{"pt", "dxy", hbook.NewH2D(20, lo, hi, 50, -0.05, 0.05)},
		{"pt", "dxyErr", hbook.NewH2D(20, lo, hi, 50, 0, 0.02)},
		{"pt", "dxySig", hbook.NewH2D(20, lo, hi, 50, -3, 3)},
		{"pt", "dz", hbook.NewH2D(20, lo, hi, 100, -0.05, 0.05)},
		{"pt", "dzErr", hbook.NewH2D(20, lo, hi, 50, 0, 0.06)},
		{"pt", "dzSig", hbook.NewH2D(20, lo, hi, 50, -5, 5)},
		{"pt", "IP", hbook.NewH2D(20, lo, hi, 100, 0, 0.01)},
		{"pt", "IPErr", hbook.NewH2D(20, lo, hi, 50, -5, 5)},
		{"pt", "IPSig1", hbook.NewH2D(20, lo, hi, 100, 0, 6)},
		{"pt", "IPSig2", hbook.NewH2D(20, lo, hi, 100, 0, 6)},
		{"pt", "ISO", hbook.NewH2D(20, lo, hi, 50, 0, 8)},
		{"pt", "genPartFlav", hbook.NewH2D(20, lo, hi, 50, 0, 8)},
		{"dxySig", "IPSig1", hbook.NewH2D(10, -3, 3, 100, 0, 10)},
		{"dxySig", "IPSig2", hbook.NewH2D(10, -3, 3, 100, 0, 10)},
		{"dxySig", "dzSig", hbook.NewH2D(100, -3, 3, 100, -3, 3)},
		{"dzSig", "IPSig1", hbook.NewH2D(10, -3, 3, 100, 0, 10)},
		{"dzSig", "IPSig2", hbook.NewH2D(10, -3, 3, 100, 0, 10)},
		{"genPartFlav", "EMID", hbook.NewH2D(6, 0, 6, 22, nanoaod.EMIDCut, 12)},
	}
	return wh
}

func regionPtrs() []*nanoaod.Region {
	rs := make([]*nanoaod.Region, len(nanoaod.Regions))
	for i := range nanoaod.Regions {
		rs[i] = &nanoaod.Regions[i]
	}
	return rs
}

func (wh *windowHists) fill(e *nanoaod.Electron) {
	if !nanoaod.Preselect(e, wh.window.Low, wh.window.High) {
		return
	}
	for _, sel := range wh.sels {
		if !sel.accept(e) {
			continue
		}
		for i, spec := range wh.booking {
			v, _ := e.Value(spec.Var)
			sel.hists[i].Fill(v, 1)
		}
	}

	if !nanoaod.General(e) || !nanoaod.Iron1.Pass(e) {
		return
	}
	for _, m := range wh.maps {
		x, _ := e.Value(m.xvar)
		y, _ := e.Value(m.yvar)
		m.h.Fill(x, y, 1)
	}
}

// process fills the histograms of every window in a single pass over the
// input files.
func process(fnames []string, windows []nanoaod.Window, booking nanoplot.Booking, opts nanoaod.ScanOptions) ([]*windowHists, error) {
	for _, spec := range booking {
		if _, ok := (&nanoaod.Electron{}).Value(spec.Var); !ok {
			return nil, fmt.Errorf("unknown variable %q", spec.Var)
		}
	}

	ws := make([]*windowHists, len(windows))
	for i, w := range windows {
		ws[i] = newWindowHists(w, booking)
	}

	err := nanoaod.ScanFiles(fnames, opts, func(evt *nanoaod.Event) error {
		for j := range evt.Electrons {
			for _, wh := range ws {
				wh.fill(&evt.Electrons[j])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// save draws every histogram and records its number of entries in
// outDir/Present.csv, which is truncated first. It returns the number of
// saved plots.
func save(ws []*windowHists, outDir, sample, format string, with2D bool) (int, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("could not create output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(outDir, "Present.csv"))
	if err != nil {
		return 0, fmt.Errorf("could not create entry list: %w", err)
	}
	defer f.Close()
	present := bufio.NewWriter(f)

	n := 0
	for _, wh := range ws {
		cut := wh.window.Name
		for _, sel := range wh.sels {
			for i, spec := range wh.booking {
				var (
					h     = sel.hists[i]
					plot  = cut + "_" + spec.Var + sel.suffix
					fname = filepath.Join(outDir, sample, cut, groups[spec.Var], plot+"."+format)
				)
				if err := nanoplot.SaveH1D(h, "TTbar_"+plot, spec.Var, fname); err != nil {
					return n, err
				}
				fmt.Fprintf(present, "%s,%d\n", plot, h.Entries())
				n++
			}
		}

		if !with2D {
			continue
		}
		for _, m := range wh.maps {
			var (
				plot  = cut + "_" + m.xvar + "_vs_" + m.yvar + "_" + nanoaod.Iron1.Name
				fname = filepath.Join(outDir, "2DPlots", plot+"."+format)
			)
			if err := nanoplot.SaveH2D(m.h, plot, m.xvar, m.yvar, fname); err != nil {
				return n, err
			}
			n++
		}
	}

	if err := present.Flush(); err != nil {
		return n, fmt.Errorf("could not write entry list: %w", err)
	}
	return n, f.Close()
}
