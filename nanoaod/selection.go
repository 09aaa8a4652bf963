package nanoaod

import (
	"fmt"
	"math"
	"strconv"
)

const (
	EtaCut  = 2.4
	EMIDCut = 4.0
	// PreEMIDCut is the looser embedded ID cut of the preselection.
	PreEMIDCut = 1.5
	ISOCut     = 4.0
	DxyCut     = 0.05
	DzCut      = 0.1
	SigCut     = 2.0
)

// Preselect keeps electrons inside the pt window [lo, hi).
func Preselect(e *Electron, lo, hi float64) bool {
	return e.Pt >= lo && e.Pt < hi &&
		e.EmbeddedID >= PreEMIDCut &&
		math.Abs(e.Eta) < EtaCut
}

// General is the baseline selection every region builds upon.
func General(e *Electron) bool {
	return math.Abs(e.Eta) < EtaCut &&
		e.EmbeddedID >= EMIDCut &&
		e.ConvVeto
}

// Region is a named selection applied on top of General.
type Region struct {
	Name string
	Pass func(e *Electron) bool
}

func isolated(e *Electron) bool {
	return e.MiniPFRelIso < ISOCut
}

func prompt(e *Electron) bool {
	return math.Abs(e.Dxy) < DxyCut && math.Abs(e.Dz) < DzCut
}

var (
	Iron1 = Region{"Iron1", func(e *Electron) bool {
		return isolated(e) && prompt(e) && e.IPSig1() < SigCut
	}}
	Iron2 = Region{"Iron2", func(e *Electron) bool {
		return isolated(e) && prompt(e) && math.Abs(e.DzSig()) < SigCut
	}}
	Long1 = Region{"Long1", func(e *Electron) bool {
		return isolated(e) && e.IPSig1() >= SigCut
	}}
	Long2 = Region{"Long2", func(e *Electron) bool {
		return isolated(e) && math.Abs(e.DzSig()) >= SigCut
	}}
	IronFake = Region{"IronFake", func(e *Electron) bool {
		return !isolated(e) && prompt(e) && e.IPSig1() < SigCut
	}}

	// IronNoEMID is Iron1 without any embedded ID cut. It is applied
	// instead of General, not on top of it.
	IronNoEMID = Region{"IronNoEMID", func(e *Electron) bool {
		return math.Abs(e.Eta) < EtaCut && e.ConvVeto &&
			isolated(e) && prompt(e) && e.IPSig1() < SigCut
	}}
)

// Regions lists the signal and control regions.
var Regions = []Region{Iron1, Iron2, Long1, Long2, IronFake}

// LookupRegion returns the region with the given name.
func LookupRegion(name string) (Region, error) {
	if name == IronNoEMID.Name {
		return IronNoEMID, nil
	}
	for _, r := range Regions {
		if r.Name == name {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("unknown region %q", name)
}

// Window is a named transverse momentum interval [Low, High).
type Window struct {
	Name string
	Low  float64
	High float64
}

func (w Window) Contains(pt float64) bool {
	return pt >= w.Low && pt < w.High
}

// WindowName names the interval [lo, hi) "lo_hi".
func WindowName(lo, hi float64) string {
	return strconv.FormatFloat(lo, 'g', -1, 64) + "_" + strconv.FormatFloat(hi, 'g', -1, 64)
}

// DefaultWindows returns the 1 GeV windows from 1 to 20 GeV followed by the
// wide LowCut, MidCut, HighCut and General windows.
func DefaultWindows() []Window {
	var ws []Window
	for lo := 1; lo < 20; lo++ {
		ws = append(ws, Window{
			Name: WindowName(float64(lo), float64(lo+1)),
			Low:  float64(lo),
			High: float64(lo + 1),
		})
	}
	return append(ws,
		Window{"LowCut", 1, 5},
		Window{"MidCut", 5, 10},
		Window{"HighCut", 10, 20},
		Window{"General", 1, 20},
	)
}

// EdgeWindows builds consecutive windows from increasing pt edges.
func EdgeWindows(edges []float64) ([]Window, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("need at least 2 pt edges, got %d", len(edges))
	}
	ws := make([]Window, 0, len(edges)-1)
	for i := 1; i < len(edges); i++ {
		lo, hi := edges[i-1], edges[i]
		if !(hi > lo) {
			return nil, fmt.Errorf("pt edges not increasing: %g, %g", lo, hi)
		}
		ws = append(ws, Window{Name: WindowName(lo, hi), Low: lo, High: hi})
	}
	return ws, nil
}
