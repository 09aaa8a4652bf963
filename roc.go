package nanoplot

import (
	"errors"
	"fmt"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot/plotter"
)

var ErrEmptyHist = errors.New("nanoplot: empty histogram")

// ROC returns the (background efficiency, signal efficiency) points obtained
// by cutting on the discriminant histogrammed in sig and bkg. Point i keeps
// the top i+1 bins, so the last point is always (1, 1). Under- and overflow
// are ignored.
func ROC(sig, bkg *hbook.H1D) (plotter.XYs, error) {
	if sig.Len() != bkg.Len() {
		return nil, fmt.Errorf("could not compute ROC: %d signal bins vs %d background bins", sig.Len(), bkg.Len())
	}

	sigTot, bkgTot := sumW(sig), sumW(bkg)
	switch {
	case sigTot == 0:
		return nil, fmt.Errorf("could not compute ROC: signal: %w", ErrEmptyHist)
	case bkgTot == 0:
		return nil, fmt.Errorf("could not compute ROC: background: %w", ErrEmptyHist)
	}

	n := sig.Len()
	pts := make(plotter.XYs, n)
	var s, b float64
	for i := 0; i < n; i++ {
		s += sig.Binning.Bins[n-1-i].SumW()
		b += bkg.Binning.Bins[n-1-i].SumW()
		pts[i].X = b / bkgTot
		pts[i].Y = s / sigTot
	}
	return pts, nil
}

func sumW(h *hbook.H1D) float64 {
	sum := 0.0
	for _, bin := range h.Binning.Bins {
		sum += bin.SumW()
	}
	return sum
}
