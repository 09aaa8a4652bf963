package nanoaod

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPreselect(t *testing.T) {
	for _, tc := range []struct {
		name string
		e    Electron
		want bool
	}{
		{"pass", Electron{Pt: 1, EmbeddedID: 1.5, Eta: 2.3}, true},
		{"pt-high-edge", Electron{Pt: 2, EmbeddedID: 3, Eta: 0}, false},
		{"emid", Electron{Pt: 1.5, EmbeddedID: 1.4, Eta: 0}, false},
		{"eta", Electron{Pt: 1.5, EmbeddedID: 3, Eta: -2.4}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := Preselect(&tc.e, 1, 2); got != tc.want {
				t.Fatalf("got=%v, want=%v", got, tc.want)
			}
		})
	}
}

func TestRegions(t *testing.T) {
	base := Electron{Pt: 5, Eta: 0.1, EmbeddedID: 5, ConvVeto: true}

	for _, tc := range []struct {
		name    string
		mod     func(e *Electron)
		general bool
		want    []string
	}{
		{
			name:    "prompt",
			mod:     func(e *Electron) { e.MiniPFRelIso = 1; e.Dxy, e.DxyErr, e.Dz, e.DzErr = 0.01, 0.01, 0.01, 0.02 },
			general: true,
			want:    []string{"Iron1", "Iron2"},
		},
		{
			name:    "displaced",
			mod:     func(e *Electron) { e.MiniPFRelIso = 1; e.Dxy, e.DxyErr, e.Dz, e.DzErr = 0.04, 0.01, 0.09, 0.01 },
			general: true,
			want:    []string{"Long1", "Long2"},
		},
		{
			name:    "fake",
			mod:     func(e *Electron) { e.MiniPFRelIso = 4; e.Dxy, e.DxyErr, e.Dz, e.DzErr = 0.01, 0.01, 0.01, 0.02 },
			general: true,
			want:    []string{"IronFake"},
		},
		{
			name:    "sentinel",
			mod:     func(e *Electron) { e.MiniPFRelIso = 1; e.Dxy, e.Dz = 0.01, 0.01 },
			general: true,
			want:    []string{"Iron1", "Long2"},
		},
		{
			name:    "no-conv-veto",
			mod:     func(e *Electron) { e.ConvVeto = false },
			general: false,
		},
		{
			name:    "low-emid",
			mod:     func(e *Electron) { e.EmbeddedID = 3.9 },
			general: false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := base
			tc.mod(&e)
			if got := General(&e); got != tc.general {
				t.Fatalf("general: got=%v, want=%v", got, tc.general)
			}
			if !tc.general {
				return
			}
			var got []string
			for _, r := range Regions {
				if r.Pass(&e) {
					got = append(got, r.Name)
				}
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("invalid regions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIronNoEMID(t *testing.T) {
	e := Electron{Eta: 1, EmbeddedID: -1, ConvVeto: true, Dxy: 0.01, DxyErr: 0.01, Dz: 0.01, DzErr: 0.01}
	if !IronNoEMID.Pass(&e) {
		t.Fatalf("expected electron to pass")
	}
	e.ConvVeto = false
	if IronNoEMID.Pass(&e) {
		t.Fatalf("expected electron to fail")
	}

	r, err := LookupRegion("IronNoEMID")
	if err != nil || r.Name != "IronNoEMID" {
		t.Fatalf("could not look up region: %v", err)
	}
	if _, err := LookupRegion("Iron3"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestDefaultWindows(t *testing.T) {
	ws := DefaultWindows()
	if got, want := len(ws), 23; got != want {
		t.Fatalf("invalid number of windows: got=%d, want=%d", got, want)
	}

	names := make(map[string]bool)
	for _, w := range ws {
		if names[w.Name] {
			t.Fatalf("duplicate window %q", w.Name)
		}
		names[w.Name] = true
	}
	for _, name := range []string{"1_2", "12_13", "19_20", "LowCut", "MidCut", "HighCut", "General"} {
		if !names[name] {
			t.Errorf("missing window %q", name)
		}
	}

	if w := ws[11]; w.Name != "12_13" || !w.Contains(12) || w.Contains(13) {
		t.Fatalf("invalid window: %+v", w)
	}
}

func TestEdgeWindows(t *testing.T) {
	ws, err := EdgeWindows([]float64{1, 2.5, 10})
	if err != nil {
		t.Fatal(err)
	}
	want := []Window{{"1_2.5", 1, 2.5}, {"2.5_10", 2.5, 10}}
	if diff := cmp.Diff(want, ws); diff != "" {
		t.Fatalf("invalid windows (-want +got):\n%s", diff)
	}

	for _, edges := range [][]float64{nil, {1}, {1, 1}, {2, 1}} {
		if _, err := EdgeWindows(edges); err == nil {
			t.Errorf("%v: expected an error", edges)
		}
	}
}
