package main

import (
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
	sample   = flag.String("sample", "TTJets", "sample name used in plot titles and file names")
	treeName = flag.String("tree", "Events", "name of the input tree")
	coll     = flag.String("coll", "LowPtElectron", "electron collection")
	maxEvts  = flag.Int64("max", 0, "maximum number of events per file (0 reads all)")
	format   = flag.String("format", "pdf", "image format of the plots")
	config   = flag.String("config", "", "YAML file overriding the histogram binning")
	skim     = flag.String("skim", "", "write the electrons passing the general selection to this ROOT file")
	doProf   = flag.Bool("prof", false, "write a CPU profile")
)

// nElectrons is filled once per event, all others once per electron.
var defaultBooking = nanoplot.Booking{
	{Var: "nElectrons", NBins: 6, Low: 0, High: 6},
	{Var: "genPartFlav", NBins: 30, Low: 0, High: 30},
	{Var: "genPartIdx", NBins: 40, Low: -1, High: 39},
	{Var: "pt", NBins: 20, Low: 0, High: 20},
	{Var: "eta", NBins: 30, Low: -3, High: 3},
	{Var: "phi", NBins: 32, Low: -3.2, High: 3.2},
	{Var: "mass", NBins: 20, Low: 0, High: 0.01},
	{Var: "EMID", NBins: 45, Low: -1, High: 8},
	{Var: "dxy", NBins: 50, Low: -0.2, High: 0.2},
	{Var: "dxyErr", NBins: 50, Low: 0, High: 0.2},
	{Var: "dz", NBins: 50, Low: -0.2, High: 0.2},
	{Var: "dzErr", NBins: 20, Low: 0, High: 0.2},
	{Var: "ISO", NBins: 50, Low: 0, High: 20},
	{Var: "CONV", NBins: 2, Low: 0, High: 2},
	{Var: "dxySig", NBins: 50, Low: -5, High: 5},
	{Var: "dzSig", NBins: 50, Low: -5, High: 5},
	{Var: "IPSig1", NBins: 50, Low: 0, High: 10},
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <nanoaod-input-files>...

options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("lowpt_kinematics: ")
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
	var skimmer *nanoaod.Writer
	if *skim != "" {
		skimmer, err = nanoaod.Create(*skim, opts)
		if err != nil {
			log.Fatal(err)
		}
	}

	hists, err := process(flag.Args(), booking, opts, skimmer)
	if err != nil {
		log.Fatal(err)
	}
	if skimmer != nil {
		if err := skimmer.Close(); err != nil {
			log.Fatal(err)
		}
	}

	for i, spec := range booking {
		fname := filepath.Join(*outDir, fmt.Sprintf("%s_%s.%s", *sample, spec.Var, *format))
		if err := nanoplot.SaveH1D(hists[i], *sample, spec.Var, fname); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("saved %d plots to %s", len(booking), *outDir)
}

// process fills one histogram per booked variable, in booking order. When
// skim is not nil, it receives the electrons of each event passing the
// general selection.
func process(fnames []string, booking nanoplot.Booking, opts nanoaod.ScanOptions, skim *nanoaod.Writer) ([]*hbook.H1D, error) {
	hists := make([]*hbook.H1D, len(booking))
	for i, spec := range booking {
		if _, ok := (&nanoaod.Electron{}).Value(spec.Var); !ok && spec.Var != "nElectrons" {
			return nil, fmt.Errorf("unknown variable %q", spec.Var)
		}
		hists[i] = spec.New(spec.Var)
	}

	var sel []nanoaod.Electron
	err := nanoaod.ScanFiles(fnames, opts, func(evt *nanoaod.Event) error {
		if skim != nil {
			sel = sel[:0]
			for j := range evt.Electrons {
				if nanoaod.General(&evt.Electrons[j]) {
					sel = append(sel, evt.Electrons[j])
				}
			}
			if err := skim.Write(sel); err != nil {
				return err
			}
		}

		for i, spec := range booking {
			if spec.Var == "nElectrons" {
				hists[i].Fill(float64(len(evt.Electrons)), 1)
				continue
			}
			for j := range evt.Electrons {
				v, _ := evt.Electrons[j].Value(spec.Var)
				hists[i].Fill(v, 1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hists, nil
}
