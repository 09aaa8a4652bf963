package tunesum

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Channels are the lepton multiplicity suffixes of a sample.
var Channels = []string{"_0L", "_1L", "_2L", "_3L"}

// TierFile returns the path of the table of tier t for channel dir.
func TierFile(outDir, dir string, t Tier) string {
	return filepath.Join(outDir, filepath.Base(dir)+"_"+t.String()+".csv")
}

// Finder writes the gold, silver and bronze tables of the result files found
// directly inside dir, gold files first, each tier in lexical order. Files
// of no tier are ignored. It returns the paths of the written tables.
func Finder(dir, outDir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not list channel directory: %w", err)
	}

	byTier := make(map[Tier][]string)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		tier, ok := TierOf(entry.Name())
		if !ok {
			continue
		}
		byTier[tier] = append(byTier[tier], entry.Name())
	}

	fnames := make([]string, 0, len(Tiers))
	for _, tier := range Tiers {
		fname := TierFile(outDir, dir, tier)
		if err := writeTier(fname, dir, byTier[tier]); err != nil {
			return nil, err
		}
		fnames = append(fnames, fname)
	}
	return fnames, nil
}

func writeTier(fname, dir string, names []string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create tier table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("could not write header of %q: %w", fname, err)
	}
	for _, name := range names {
		y, err := Sum(dir, name)
		if err != nil {
			return err
		}
		if err := w.Write(y.Record()); err != nil {
			return fmt.Errorf("could not write %q to %q: %w", name, fname, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("could not flush %q: %w", fname, err)
	}
	return f.Close()
}

// Summary returns the totals of a tier table, named after the table file.
func Summary(fname string) (Yield, error) {
	f, err := os.Open(fname)
	if err != nil {
		return Yield{}, fmt.Errorf("could not open tier table: %w", err)
	}
	defer f.Close()

	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Yield{}, fmt.Errorf("could not read tier table %q: %w", fname, err)
	}
	if len(recs) == 0 {
		return Yield{}, fmt.Errorf("tier table %q has no header", fname)
	}

	cols := make(map[string]int)
	for i, name := range recs[0] {
		cols[name] = i
	}
	column := func(name string) ([]float64, error) {
		j, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("tier table %q has no %q column", fname, name)
		}
		vs := make([]float64, 0, len(recs)-1)
		for i, rec := range recs[1:] {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("tier table %q, row %d: %w", fname, i+1, err)
			}
			vs = append(vs, v)
		}
		return vs, nil
	}

	var vs [4][]float64
	for i, name := range Header[1:] {
		vs[i], err = column(name)
		if err != nil {
			return Yield{}, err
		}
	}

	return Yield{
		Name:     filepath.Base(fname),
		TTbar:    floats.Sum(vs[0]),
		TTbarErr: floats.Norm(vs[1], 2),
		CP5:      floats.Sum(vs[2]),
		CP5Err:   floats.Norm(vs[3], 2),
	}, nil
}

// SumFind runs Finder concurrently on every channel of sample below root,
// then writes outDir/Summary.csv with one row per tier table.
func SumFind(root, sample, outDir string) error {
	tables := make([][]string, len(Channels))

	var grp errgroup.Group
	for i, ch := range Channels {
		i, dir := i, filepath.Join(root, sample+ch)
		grp.Go(func() error {
			fnames, err := Finder(dir, outDir)
			if err != nil {
				return fmt.Errorf("could not process channel %q: %w", filepath.Base(dir), err)
			}
			tables[i] = fnames
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	fname := filepath.Join(outDir, "Summary.csv")
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create summary: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("could not write summary header: %w", err)
	}
	for _, fnames := range tables {
		for _, table := range fnames {
			y, err := Summary(table)
			if err != nil {
				return err
			}
			if err := w.Write(y.Record()); err != nil {
				return fmt.Errorf("could not write summary: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("could not flush summary: %w", err)
	}
	return f.Close()
}
