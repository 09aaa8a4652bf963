// Package nanoaod reads low-pT electrons out of NanoAOD ntuples and
// implements the electron selections used by the analysis tools.
package nanoaod

import (
	"math"
)

// Invalid marks a derived quantity whose error term vanishes.
const Invalid = -999

type Electron struct {
	Pt           float64
	Eta          float64
	Phi          float64
	Mass         float64
	Dxy          float64
	DxyErr       float64
	Dz           float64
	DzErr        float64
	EmbeddedID   float64
	MiniPFRelIso float64
	ConvVeto     bool
	GenPartFlav  int
	GenPartIdx   int
}

func (e *Electron) DxySig() float64 {
	if e.DxyErr == 0 {
		return Invalid
	}
	return e.Dxy / e.DxyErr
}

func (e *Electron) DzSig() float64 {
	if e.DzErr == 0 {
		return Invalid
	}
	return e.Dz / e.DzErr
}

func (e *Electron) hasErrors() bool {
	return e.DxyErr != 0 && e.DzErr != 0
}

// IPSig1 is the quadrature sum of the transverse and longitudinal
// significances.
func (e *Electron) IPSig1() float64 {
	if !e.hasErrors() {
		return Invalid
	}
	return math.Hypot(e.DxySig(), e.DzSig())
}

// IP is the 3D impact parameter.
func (e *Electron) IP() float64 {
	if !e.hasErrors() {
		return Invalid
	}
	return math.Hypot(e.Dxy, e.Dz)
}

func (e *Electron) IPErr() float64 {
	if !e.hasErrors() {
		return Invalid
	}
	return math.Hypot(e.DxyErr, e.DzErr)
}

// IPSig2 is the significance of the 3D impact parameter.
func (e *Electron) IPSig2() float64 {
	if !e.hasErrors() {
		return Invalid
	}
	return math.Abs(e.IP() / e.IPErr())
}

func (e *Electron) IPSigDiff() float64 {
	return e.IPSig1() - e.IPSig2()
}

// Variables lists the names understood by Value.
var Variables = []string{
	"pt", "eta", "phi", "mass",
	"dxy", "dxyErr", "dxySig",
	"dz", "dzErr", "dzSig",
	"EMID", "ISO", "CONV",
	"IP", "IPErr", "IPSig1", "IPSig2", "IPSigDiff",
	"genPartFlav", "genPartIdx",
}

// Value returns the named quantity. CONV is 1 when the conversion veto
// is passed.
func (e *Electron) Value(variable string) (float64, bool) {
	switch variable {
	case "pt":
		return e.Pt, true
	case "eta":
		return e.Eta, true
	case "phi":
		return e.Phi, true
	case "mass":
		return e.Mass, true
	case "dxy":
		return e.Dxy, true
	case "dxyErr":
		return e.DxyErr, true
	case "dxySig":
		return e.DxySig(), true
	case "dz":
		return e.Dz, true
	case "dzErr":
		return e.DzErr, true
	case "dzSig":
		return e.DzSig(), true
	case "EMID":
		return e.EmbeddedID, true
	case "ISO":
		return e.MiniPFRelIso, true
	case "CONV":
		if e.ConvVeto {
			return 1, true
		}
		return 0, true
	case "IP":
		return e.IP(), true
	case "IPErr":
		return e.IPErr(), true
	case "IPSig1":
		return e.IPSig1(), true
	case "IPSig2":
		return e.IPSig2(), true
	case "IPSigDiff":
		return e.IPSigDiff(), true
	case "genPartFlav":
		return float64(e.GenPartFlav), true
	case "genPartIdx":
		return float64(e.GenPartIdx), true
	}
	return 0, false
}
