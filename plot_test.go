package nanoplot

import (
	"os"
	"path/filepath"
	"testing"

	"go-hep.org/x/hep/hbook"
)

func TestSaveH1D(t *testing.T) {
	h := HistSpec{Var: "pt", NBins: 20, Low: 0, High: 20}.New("pt")
	for _, v := range []float64{1.5, 2.5, 2.5, 10} {
		h.Fill(v, 1)
	}

	fname := filepath.Join(t.TempDir(), "sub", "pt.png")
	if err := SaveH1D(h, "TTJets", "pt", fname); err != nil {
		t.Fatalf("could not save plot: %+v", err)
	}
	if _, err := os.Stat(fname); err != nil {
		t.Fatalf("missing output file: %+v", err)
	}
}

func TestSaveH2D(t *testing.T) {
	h := hbook.NewH2D(4, 0, 20, 4, 4, 12)
	h.Fill(1, 5, 1)
	h.Fill(11, 9, 2)

	fname := filepath.Join(t.TempDir(), "pt_vs_EMID.png")
	if err := SaveH2D(h, "Flav1", "pt", "EMID", fname); err != nil {
		t.Fatalf("could not save plot: %+v", err)
	}
	if _, err := os.Stat(fname); err != nil {
		t.Fatalf("missing output file: %+v", err)
	}

	if err := SaveH2D(h, "", "pt", "EMID", filepath.Join(t.TempDir(), "out.bogus")); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}
