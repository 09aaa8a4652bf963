package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/nanoplot"
	"github.com/decibelcooper/nanoplot/nanoaod"
)

var (
	outDir   = flag.String("o", "maps", "output directory")
	sample   = flag.String("sample", "TTJets", "sample name used in plot titles")
	treeName = flag.String("tree", "Events", "name of the input tree")
	coll     = flag.String("coll", "LowPtElectron", "electron collection")
	maxEvts  = flag.Int64("max", 0, "maximum number of events per file (0 reads all)")
	format   = flag.String("format", "pdf", "image format of the plots")
	doProf   = flag.Bool("prof", false, "write a CPU profile")
	flavs    = nanoplot.StringsFlag{Values: []string{"Flav0", "Flav1", "Flav5"}}
)

func init() {
	flag.Var(&flavs, "flav", "comma separated flavors to map, e.g. Flav0,Flav1")
}

// ptRange selects electrons inside window and bins them over [low, high).
type ptRange struct {
	name      string
	nbins     int
	low, high float64
	window    nanoaod.Window
}

var ptRanges = []ptRange{
	{"Low", 20, 0, 5, nanoaod.Window{Name: "Low", Low: 1, High: 5}},
	{"Mid", 20, 5, 10, nanoaod.Window{Name: "Mid", Low: 5, High: 10}},
	{"High", 40, 10, 20, nanoaod.Window{Name: "High", Low: 10, High: 20}},
	// no pt cut
	{"NoPt", 80, 0, 20, nanoaod.Window{Name: "NoPt", Low: math.Inf(-1), High: math.Inf(1)}},
}

type emidAxis struct {
	nbins     int
	low, high float64
}

var (
	tightEMID = emidAxis{56, nanoaod.EMIDCut, 12}
	looseEMID = emidAxis{88, nanoaod.PreEMIDCut, 12}
)

type group struct {
	name string
	pass func(e *nanoaod.Electron) bool
	// emid returns the EMID axis of the pt range
	emid func(r ptRange) emidAxis
}

func inRegion(r nanoaod.Region) func(e *nanoaod.Electron) bool {
	return func(e *nanoaod.Electron) bool {
		return nanoaod.General(e) && r.Pass(e)
	}
}

func tight(ptRange) emidAxis { return tightEMID }
func loose(ptRange) emidAxis { return looseEMID }

var groups = []group{
	{
		name: "All",
		pass: func(e *nanoaod.Electron) bool { return math.Abs(e.Eta) < nanoaod.EtaCut },
		emid: func(r ptRange) emidAxis {
			if r.name == "NoPt" {
				return looseEMID
			}
			return tightEMID
		},
	},
	{name: "Iron1", pass: inRegion(nanoaod.Iron1), emid: tight},
	{name: "Long1", pass: inRegion(nanoaod.Long1), emid: tight},
	{name: "Fake", pass: inRegion(nanoaod.IronFake), emid: tight},
	{name: nanoaod.IronNoEMID.Name, pass: nanoaod.IronNoEMID.Pass, emid: loose},
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <nanoaod-input-files>...

options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("lowpt_maps: ")
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

	codes, err := parseFlavors(flavs.Values)
	if err != nil {
		log.Fatal(err)
	}

	opts := nanoaod.ScanOptions{
		Tree:       *treeName,
		Collection: *coll,
		MaxEvents:  *maxEvts,
		Progress:   log.Default(),
	}
	maps, err := process(flag.Args(), codes, opts)
	if err != nil {
		log.Fatal(err)
	}

	for _, m := range maps {
		fname := filepath.Join(*outDir, m.name+"."+*format)
		if err := nanoplot.SaveH2D(m.h, *sample+"_"+m.name, "pt", "EMID", fname); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("saved %d maps to %s", len(maps), *outDir)
}

func parseFlavors(names []string) ([]int, error) {
	codes := make([]int, 0, len(names))
	for _, name := range names {
		var code int
		if _, err := fmt.Sscanf(name, "Flav%d", &code); err != nil {
			return nil, fmt.Errorf("invalid flavor %q", name)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

type ptEMIDMap struct {
	name   string
	group  *group
	flavor int
	pt     ptRange
	h      *hbook.H2D
}

// process fills a pt vs EMID map for every group, flavor and pt range.
func process(fnames []string, flavors []int, opts nanoaod.ScanOptions) ([]*ptEMIDMap, error) {
	var maps []*ptEMIDMap
	for i := range groups {
		g := &groups[i]
		for _, flav := range flavors {
			for _, r := range ptRanges {
				ax := g.emid(r)
				maps = append(maps, &ptEMIDMap{
					name:   fmt.Sprintf("pt_vs_EMID_%s_%s_%s", g.name, nanoaod.FlavorName(flav), r.name),
					group:  g,
					flavor: flav,
					pt:     r,
					h:      hbook.NewH2D(r.nbins, r.low, r.high, ax.nbins, ax.low, ax.high),
				})
			}
		}
	}

	err := nanoaod.ScanFiles(fnames, opts, func(evt *nanoaod.Event) error {
		for j := range evt.Electrons {
			e := &evt.Electrons[j]
			for _, m := range maps {
				if e.GenPartFlav != m.flavor || !m.pt.window.Contains(e.Pt) || !m.group.pass(e) {
					continue
				}
				m.h.Fill(e.Pt, e.EmbeddedID, 1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return maps, nil
}
