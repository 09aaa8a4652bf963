package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/decibelcooper/nanoplot/tunesum"
)

var (
	rootDir = flag.String("root", ".", "directory holding the <sample>_<channel> result directories")
	outDir  = flag.String("o", ".", "output directory of the tier tables and Summary.csv")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] [sample]

Without a sample argument, the sample name is prompted for.

options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("tune_summary: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() > 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	sample := flag.Arg(0)
	if sample == "" {
		var err error
		sample, err = promptSample()
		if err != nil {
			log.Fatal(err)
		}
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal(err)
	}
	if err := tunesum.SumFind(*rootDir, sample, *outDir); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote summary of %s to %s", sample, *outDir)
}

func promptSample() (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	return readSample(line)
}

type prompter interface {
	Prompt(prompt string) (string, error)
}

func readSample(p prompter) (string, error) {
	sample, err := p.Prompt("Sample name? ")
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", fmt.Errorf("aborted")
	case err != nil:
		return "", fmt.Errorf("could not read sample name: %w", err)
	}
	sample = strings.TrimSpace(sample)
	if sample == "" {
		return "", fmt.Errorf("empty sample name")
	}
	return sample, nil
}
