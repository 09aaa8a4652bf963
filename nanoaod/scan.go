package nanoaod

import (
	"errors"
	"fmt"
	"log"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

var ErrMissingBranch = errors.New("nanoaod: missing branch")

type ScanOptions struct {
	Tree       string // default "Events"
	Collection string // default "LowPtElectron"
	MaxEvents  int64  // per file, 0 reads all events

	// Progress, when set, receives an "Event N" line every Every events.
	Progress *log.Logger
	Every    int64 // default 1000
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.Tree == "" {
		o.Tree = "Events"
	}
	if o.Collection == "" {
		o.Collection = "LowPtElectron"
	}
	if o.Every <= 0 {
		o.Every = 1000
	}
	return o
}

// Event holds the electrons of one tree entry. Electrons is reused
// between calls of the scan callback.
type Event struct {
	Entry     int64
	Electrons []Electron
}

type field struct {
	suffix string
	set    func(e *Electron, v float64)
}

var fields = []field{
	{"_pt", func(e *Electron, v float64) { e.Pt = v }},
	{"_eta", func(e *Electron, v float64) { e.Eta = v }},
	{"_phi", func(e *Electron, v float64) { e.Phi = v }},
	{"_mass", func(e *Electron, v float64) { e.Mass = v }},
	{"_dxy", func(e *Electron, v float64) { e.Dxy = v }},
	{"_dxyErr", func(e *Electron, v float64) { e.DxyErr = v }},
	{"_dz", func(e *Electron, v float64) { e.Dz = v }},
	{"_dzErr", func(e *Electron, v float64) { e.DzErr = v }},
	{"_embeddedID", func(e *Electron, v float64) { e.EmbeddedID = v }},
	{"_miniPFRelIso_all", func(e *Electron, v float64) { e.MiniPFRelIso = v }},
	{"_convVeto", func(e *Electron, v float64) { e.ConvVeto = v != 0 }},
	{"_genPartFlav", func(e *Electron, v float64) { e.GenPartFlav = int(v) }},
	{"_genPartIdx", func(e *Electron, v float64) { e.GenPartIdx = int(v) }},
}

// Scan calls fn for every entry of the tree in fname, with the electrons of
// the configured collection. Branches other than the multiplicity and the
// transverse momentum are optional and read as zero when absent.
func Scan(fname string, opts ScanOptions, fn func(evt *Event) error) error {
	opts = opts.withDefaults()

	f, err := groot.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer f.Close()

	obj, err := f.Get(opts.Tree)
	if err != nil {
		return fmt.Errorf("could not retrieve tree %q from %q: %w", opts.Tree, fname, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return fmt.Errorf("object %q in %q is not a tree", opts.Tree, fname)
	}

	countName := "n" + opts.Collection
	wanted := map[string]int{countName: -1}
	for i, fld := range fields {
		wanted[opts.Collection+fld.suffix] = i
	}

	var (
		count  any
		hasPt  bool
		cols   []any
		colFld []field
	)
	rvars := make([]rtree.ReadVar, 0, len(wanted))
	for _, rv := range rtree.NewReadVars(tree) {
		i, ok := wanted[rv.Name]
		if !ok {
			continue
		}
		rvars = append(rvars, rv)
		if i < 0 {
			count = rv.Value
			continue
		}
		cols = append(cols, rv.Value)
		colFld = append(colFld, fields[i])
		hasPt = hasPt || i == 0
	}
	if count == nil {
		return fmt.Errorf("could not scan %q: %q: %w", fname, countName, ErrMissingBranch)
	}
	if !hasPt {
		return fmt.Errorf("could not scan %q: %q: %w", fname, opts.Collection+"_pt", ErrMissingBranch)
	}

	nevts := tree.Entries()
	if opts.MaxEvents > 0 && opts.MaxEvents < nevts {
		nevts = opts.MaxEvents
	}

	r, err := rtree.NewReader(tree, rvars, rtree.WithRange(0, nevts))
	if err != nil {
		return fmt.Errorf("could not create reader for %q: %w", fname, err)
	}
	defer r.Close()

	var (
		evt  Event
		buf  []float64
		uerr error // from fn
	)
	err = r.Read(func(ctx rtree.RCtx) error {
		if opts.Progress != nil && ctx.Entry%opts.Every == 0 {
			opts.Progress.Printf("Event %d", ctx.Entry)
		}

		n, err := scalar(count)
		if err != nil {
			return fmt.Errorf("%s: %w", countName, err)
		}
		evt.Entry = ctx.Entry
		evt.Electrons = evt.Electrons[:0]
		for i := int64(0); i < n; i++ {
			evt.Electrons = append(evt.Electrons, Electron{})
		}

		for j, col := range cols {
			buf, err = toFloats(buf[:0], col)
			if err != nil {
				return fmt.Errorf("%s%s: %w", opts.Collection, colFld[j].suffix, err)
			}
			for i := range evt.Electrons {
				if i >= len(buf) {
					break
				}
				colFld[j].set(&evt.Electrons[i], buf[i])
			}
		}
		uerr = fn(&evt)
		return uerr
	})
	if uerr != nil {
		return uerr
	}
	if err != nil {
		return fmt.Errorf("could not scan %q: %w", fname, err)
	}
	return nil
}

// ScanFiles scans every file in turn.
func ScanFiles(fnames []string, opts ScanOptions, fn func(evt *Event) error) error {
	for _, fname := range fnames {
		if err := Scan(fname, opts, fn); err != nil {
			return err
		}
	}
	return nil
}

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func appendAll[T number](dst []float64, xs []T) []float64 {
	for _, x := range xs {
		dst = append(dst, float64(x))
	}
	return dst
}

func toFloats(dst []float64, v any) ([]float64, error) {
	switch v := v.(type) {
	case *[]float32:
		return appendAll(dst, *v), nil
	case *[]float64:
		return appendAll(dst, *v), nil
	case *[]int8:
		return appendAll(dst, *v), nil
	case *[]int16:
		return appendAll(dst, *v), nil
	case *[]int32:
		return appendAll(dst, *v), nil
	case *[]int64:
		return appendAll(dst, *v), nil
	case *[]uint8:
		return appendAll(dst, *v), nil
	case *[]uint16:
		return appendAll(dst, *v), nil
	case *[]uint32:
		return appendAll(dst, *v), nil
	case *[]uint64:
		return appendAll(dst, *v), nil
	case *[]bool:
		for _, x := range *v {
			if x {
				dst = append(dst, 1)
			} else {
				dst = append(dst, 0)
			}
		}
		return dst, nil
	}
	return dst, fmt.Errorf("unsupported branch type %T", v)
}

func scalar(v any) (int64, error) {
	switch v := v.(type) {
	case *int8:
		return int64(*v), nil
	case *int16:
		return int64(*v), nil
	case *int32:
		return int64(*v), nil
	case *int64:
		return *v, nil
	case *uint8:
		return int64(*v), nil
	case *uint16:
		return int64(*v), nil
	case *uint32:
		return int64(*v), nil
	case *uint64:
		return int64(*v), nil
	}
	return 0, fmt.Errorf("unsupported multiplicity type %T", v)
}
