package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/nanoplot"
	"github.com/decibelcooper/nanoplot/nanoaod"
)

var (
	outDir   = flag.String("o", "plots", "output directory")
	sample   = flag.String("sample", "TTJets", "sample name used in plot titles and file names")
	treeName = flag.String("tree", "Events", "name of the input tree")
	coll     = flag.String("coll", "LowPtElectron", "electron collection")
	maxEvts  = flag.Int64("max", 0, "maximum number of events per file (0 reads all)")
	format   = flag.String("format", "pdf", "image format of the plots")
	verbose  = flag.Bool("v", false, "print the flavors of every event")
	doProf   = flag.Bool("prof", false, "write a CPU profile")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <nanoaod-input-files>...

options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("lowpt_flavor: ")
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

	opts := nanoaod.ScanOptions{
		Tree:       *treeName,
		Collection: *coll,
		MaxEvents:  *maxEvts,
		Progress:   log.Default(),
	}
	var evtOut io.Writer
	if *verbose {
		evtOut = os.Stdout
	}

	hist, counts, err := process(flag.Args(), opts, evtOut)
	if err != nil {
		log.Fatal(err)
	}
	printCounts(os.Stdout, counts)

	fname := filepath.Join(*outDir, fmt.Sprintf("%s_genPartFlav.%s", *sample, *format))
	if err := nanoplot.SaveH1D(hist, *sample, "genPartFlav", fname); err != nil {
		log.Fatal(err)
	}
}

// process histograms the flavor of every electron and counts the electrons
// of each flavor code. When evtOut is not nil, it receives one line per
// event listing its flavors.
func process(fnames []string, opts nanoaod.ScanOptions, evtOut io.Writer) (*hbook.H1D, map[int]int64, error) {
	hist := nanoplot.HistSpec{Var: "genPartFlav", NBins: 30, Low: 0, High: 30}.New("genPartFlav")
	counts := make(map[int]int64)

	flavs := make([]int, 0, 8)
	err := nanoaod.ScanFiles(fnames, opts, func(evt *nanoaod.Event) error {
		flavs = flavs[:0]
		for i := range evt.Electrons {
			flav := evt.Electrons[i].GenPartFlav
			hist.Fill(float64(flav), 1)
			counts[flav]++
			flavs = append(flavs, flav)
		}
		if evtOut != nil {
			fmt.Fprintf(evtOut, "Event %d: %v\n", evt.Entry, flavs)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return hist, counts, nil
}

func printCounts(w io.Writer, counts map[int]int64) {
	codes := make([]int, 0, len(counts))
	var total int64
	for code, n := range counts {
		codes = append(codes, code)
		total += n
	}
	sort.Ints(codes)

	fmt.Fprintf(w, "%6s  %-18s %10s\n", "flavor", "origin", "electrons")
	for _, code := range codes {
		fmt.Fprintf(w, "%6d  %-18s %10d\n", code, nanoaod.FlavorDescription(code), counts[code])
	}
	fmt.Fprintf(w, "%6s  %-18s %10d\n", "", "total", total)
}
