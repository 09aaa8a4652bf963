package nanoaod

import (
	"math"
	"testing"
)

func TestElectronDerived(t *testing.T) {
	for _, tc := range []struct {
		name string
		e    Electron
		want map[string]float64
	}{
		{
			name: "valid",
			e:    Electron{Dxy: 3, DxyErr: 1, Dz: -4, DzErr: 1},
			want: map[string]float64{
				"dxySig":    3,
				"dzSig":     -4,
				"IPSig1":    5,
				"IP":        5,
				"IPErr":     math.Sqrt2,
				"IPSig2":    5 / math.Sqrt2,
				"IPSigDiff": 5 - 5/math.Sqrt2,
			},
		},
		{
			name: "no-dxy-err",
			e:    Electron{Dxy: 3, Dz: -4, DzErr: 2},
			want: map[string]float64{
				"dxySig":    Invalid,
				"dzSig":     -2,
				"IPSig1":    Invalid,
				"IP":        Invalid,
				"IPErr":     Invalid,
				"IPSig2":    Invalid,
				"IPSigDiff": 0,
			},
		},
		{
			name: "no-dz-err",
			e:    Electron{Dxy: 3, DxyErr: 1, Dz: -4},
			want: map[string]float64{
				"dxySig": 3,
				"dzSig":  Invalid,
				"IPSig1": Invalid,
				"IPSig2": Invalid,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for name, want := range tc.want {
				got, ok := tc.e.Value(name)
				if !ok {
					t.Fatalf("unknown variable %q", name)
				}
				if math.Abs(got-want) > 1e-12 {
					t.Errorf("%s: got=%v, want=%v", name, got, want)
				}
			}
		})
	}
}

func TestElectronValue(t *testing.T) {
	e := Electron{
		Pt: 12, Eta: -1.5, EmbeddedID: 6.5, MiniPFRelIso: 0.25,
		ConvVeto: true, GenPartFlav: FlavBottom, GenPartIdx: 7,
	}
	for _, tc := range []struct {
		name string
		want float64
	}{
		{"pt", 12},
		{"eta", -1.5},
		{"EMID", 6.5},
		{"ISO", 0.25},
		{"CONV", 1},
		{"genPartFlav", 5},
		{"genPartIdx", 7},
	} {
		got, ok := e.Value(tc.name)
		if !ok {
			t.Fatalf("unknown variable %q", tc.name)
		}
		if got != tc.want {
			t.Errorf("%s: got=%v, want=%v", tc.name, got, tc.want)
		}
	}

	for _, name := range Variables {
		if _, ok := e.Value(name); !ok {
			t.Errorf("listed variable %q is unknown", name)
		}
	}

	if _, ok := e.Value("nope"); ok {
		t.Fatalf("expected an unknown variable")
	}
}

func TestFlavorName(t *testing.T) {
	for _, code := range Flavors {
		if FlavorDescription(code) == "unknown" {
			t.Errorf("flavor %d has no description", code)
		}
	}
	if got, want := FlavorName(FlavConversion), "Flav22"; got != want {
		t.Fatalf("invalid name: got=%q, want=%q", got, want)
	}
}
