package nanoplot

import (
	"fmt"
	"io"
	"os"

	"go-hep.org/x/hep/hbook"
	"gopkg.in/yaml.v3"
)

// HistSpec describes a fixed-binned 1D histogram of a named variable.
type HistSpec struct {
	Var   string  `yaml:"var"`
	NBins int     `yaml:"nbins"`
	Low   float64 `yaml:"low"`
	High  float64 `yaml:"high"`
}

func (s HistSpec) Validate() error {
	switch {
	case s.Var == "":
		return fmt.Errorf("histogram spec without variable name")
	case s.NBins <= 0:
		return fmt.Errorf("histogram %q: invalid number of bins %d", s.Var, s.NBins)
	case !(s.High > s.Low):
		return fmt.Errorf("histogram %q: invalid range [%g, %g)", s.Var, s.Low, s.High)
	}
	return nil
}

// New books an empty histogram named name.
func (s HistSpec) New(name string) *hbook.H1D {
	h := hbook.NewH1D(s.NBins, s.Low, s.High)
	h.Annotation()["name"] = name
	return h
}

// Booking is an ordered set of histogram specs, unique by variable.
type Booking []HistSpec

func (b Booking) Lookup(v string) (HistSpec, bool) {
	for _, s := range b {
		if s.Var == v {
			return s, true
		}
	}
	return HistSpec{}, false
}

// Override returns a copy of b where specs of o replace the ones with the
// same variable. Variables unknown to b are appended.
func (b Booking) Override(o Booking) Booking {
	out := make(Booking, len(b), len(b)+len(o))
	copy(out, b)
	for _, s := range o {
		found := false
		for i := range out {
			if out[i].Var == s.Var {
				out[i] = s
				found = true
				break
			}
		}
		if !found {
			out = append(out, s)
		}
	}
	return out
}

type bookingFile struct {
	Hists Booking `yaml:"hists"`
}

// ReadBooking decodes a YAML document of the form:
//
//	hists:
//	  - var: pt
//	    nbins: 20
//	    low: 0
//	    high: 20
func ReadBooking(r io.Reader) (Booking, error) {
	var doc bookingFile
	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not decode booking: %w", err)
	}

	seen := make(map[string]bool, len(doc.Hists))
	for _, s := range doc.Hists {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.Var] {
			return nil, fmt.Errorf("histogram %q booked twice", s.Var)
		}
		seen[s.Var] = true
	}
	return doc.Hists, nil
}

// LoadBooking applies the YAML booking file fname on top of def.
// An empty fname returns def unchanged.
func LoadBooking(fname string, def Booking) (Booking, error) {
	if fname == "" {
		return def, nil
	}
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open booking file: %w", err)
	}
	defer f.Close()

	b, err := ReadBooking(f)
	if err != nil {
		return nil, fmt.Errorf("could not read booking %q: %w", fname, err)
	}
	return def.Override(b), nil
}
