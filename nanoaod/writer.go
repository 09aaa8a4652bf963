package nanoaod

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// Writer writes electrons into a tree with the NanoAOD branch layout, so
// that the output can be scanned again.
type Writer struct {
	f *riofs.File
	w rtree.Writer

	n                      int32
	pt, eta, phi, mass     []float32
	dxy, dxyErr, dz, dzErr []float32
	emid, iso              []float32
	conv                   []bool
	flav                   []uint8
	idx                    []int32
}

// Create creates fname with an empty tree named after opts.Tree holding the
// opts.Collection branches.
func Create(fname string, opts ScanOptions) (*Writer, error) {
	opts = opts.withDefaults()

	f, err := groot.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("could not create %q: %w", fname, err)
	}

	w := &Writer{f: f}
	var (
		coll  = opts.Collection
		count = "n" + coll
	)
	wvars := []rtree.WriteVar{
		{Name: count, Value: &w.n},
		{Name: coll + "_pt", Value: &w.pt, Count: count},
		{Name: coll + "_eta", Value: &w.eta, Count: count},
		{Name: coll + "_phi", Value: &w.phi, Count: count},
		{Name: coll + "_mass", Value: &w.mass, Count: count},
		{Name: coll + "_dxy", Value: &w.dxy, Count: count},
		{Name: coll + "_dxyErr", Value: &w.dxyErr, Count: count},
		{Name: coll + "_dz", Value: &w.dz, Count: count},
		{Name: coll + "_dzErr", Value: &w.dzErr, Count: count},
		{Name: coll + "_embeddedID", Value: &w.emid, Count: count},
		{Name: coll + "_miniPFRelIso_all", Value: &w.iso, Count: count},
		{Name: coll + "_convVeto", Value: &w.conv, Count: count},
		{Name: coll + "_genPartFlav", Value: &w.flav, Count: count},
		{Name: coll + "_genPartIdx", Value: &w.idx, Count: count},
	}
	w.w, err = rtree.NewWriter(f, opts.Tree, wvars)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not create tree %q: %w", opts.Tree, err)
	}
	return w, nil
}

// Write appends one event.
func (w *Writer) Write(electrons []Electron) error {
	w.n = int32(len(electrons))
	w.pt, w.eta, w.phi, w.mass = w.pt[:0], w.eta[:0], w.phi[:0], w.mass[:0]
	w.dxy, w.dxyErr, w.dz, w.dzErr = w.dxy[:0], w.dxyErr[:0], w.dz[:0], w.dzErr[:0]
	w.emid, w.iso = w.emid[:0], w.iso[:0]
	w.conv, w.flav, w.idx = w.conv[:0], w.flav[:0], w.idx[:0]

	for i := range electrons {
		e := &electrons[i]
		w.pt = append(w.pt, float32(e.Pt))
		w.eta = append(w.eta, float32(e.Eta))
		w.phi = append(w.phi, float32(e.Phi))
		w.mass = append(w.mass, float32(e.Mass))
		w.dxy = append(w.dxy, float32(e.Dxy))
		w.dxyErr = append(w.dxyErr, float32(e.DxyErr))
		w.dz = append(w.dz, float32(e.Dz))
		w.dzErr = append(w.dzErr, float32(e.DzErr))
		w.emid = append(w.emid, float32(e.EmbeddedID))
		w.iso = append(w.iso, float32(e.MiniPFRelIso))
		w.conv = append(w.conv, e.ConvVeto)
		w.flav = append(w.flav, uint8(e.GenPartFlav))
		w.idx = append(w.idx, int32(e.GenPartIdx))
	}

	if _, err := w.w.Write(); err != nil {
		return fmt.Errorf("could not write event: %w", err)
	}
	return nil
}

// Close flushes the tree and closes the file.
func (w *Writer) Close() error {
	if err := w.w.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("could not close tree: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("could not close file: %w", err)
	}
	return nil
}

// WriteFile writes every event to a new file.
func WriteFile(fname string, opts ScanOptions, events [][]Electron) error {
	w, err := Create(fname, opts)
	if err != nil {
		return err
	}
	for _, evt := range events {
		if err := w.Write(evt); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
