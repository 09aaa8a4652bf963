package efftable

import (
	"errors"
	"testing"
)

func TestFlavorOffset(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  int
	}{
		{"General_EMID_Flav0", 2},
		{"General_EMID_FLAV1", 1},
		{"General_EMID_flav5", 0},
		{"General_EMID", 3},
		{"General_EMID_Flav4", 3},
		{"General_EMID_Flav15", 1},
	} {
		if got := FlavorOffset(tc.label); got != tc.want {
			t.Errorf("%q: got=%d, want=%d", tc.label, got, tc.want)
		}
	}
}

func TestVariableRow(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  int
	}{
		{"LowCut_EMID_Iron1", 6},
		{"LowCut_pt", 11},
		{"LowCut_dxy", 16},
		{"LowCut_dxyErr", 56},
		{"LowCut_dxySig", 66},
		{"LowCut_dz", 21},
		{"LowCut_dzSig", 61},
		{"LowCut_dzErr", 51},
		{"LowCut_ISO", 26},
		{"LowCut_CONV", 31},
		{"LowCut_IP", 36},
		{"LowCut_IPErr", 36},
		{"LowCut_IPSig1", 41},
		{"LowCut_IPSig2", 46},
		{"LowCut_IPSigDiff", 36},
		{"LowCut_eta", 71},
		{"LowCut_mass", 0},
		// earlier substrings win
		{"LowCut_EMID_pt", 6},
		{"LowCut_pt_dxy", 11},
	} {
		if got := VariableRow(tc.label); got != tc.want {
			t.Errorf("%q: got=%d, want=%d", tc.label, got, tc.want)
		}
	}
}

func TestRegionOffset(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  int
	}{
		{"1_2_EMID_IronFake", 0},
		{"1_2_EMID_Long2", 1},
		{"1_2_EMID_Long1", 2},
		{"1_2_EMID_Iron2", 3},
		{"1_2_EMID_Iron1", 4},
		{"1_2_EMID", 5},
	} {
		if got := RegionOffset(tc.label); got != tc.want {
			t.Errorf("%q: got=%d, want=%d", tc.label, got, tc.want)
		}
	}
}

func TestCutColumn(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  int
	}{
		{"LowCut_EMID", 8},
		{"HighCut_EMID", 14},
		{"MidCut_EMID", 20},
		{"General_EMID", 26},
		{"1_2_EMID", 32},
		{"2_3_EMID", 38},
		{"9_10_EMID", 80},
		{"10_11_EMID", 86},
		{"12_13_EMID", 98},
		{"19_20_EMID", 140},
	} {
		got, err := CutColumn(tc.label)
		if err != nil {
			t.Errorf("%q: %+v", tc.label, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got=%d, want=%d", tc.label, got, tc.want)
		}
	}

	if _, err := CutColumn("20_21_EMID"); !errors.Is(err, ErrUnknownCut) {
		t.Fatalf("invalid error: %v", err)
	}
}

func TestLocate(t *testing.T) {
	for _, tc := range []struct {
		label string
		want  Cell
	}{
		{"1_2_EMID", Cell{Row: 1, Col: 26}},
		{"1_2_EMID_Iron1_Flav1", Cell{Row: 3, Col: 27}},
		{"1_2_EMID_IronFake_Flav0", Cell{Row: 2, Col: 31}},
		{"LowCut_EMID", Cell{Row: 1, Col: 2}},
		{"19_20_eta_IronFake_Flav5", Cell{Row: 69, Col: 139}},
	} {
		got, err := Locate(tc.label)
		if err != nil {
			t.Errorf("%q: %+v", tc.label, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got=%+v, want=%+v", tc.label, got, tc.want)
		}
	}

	if _, err := Locate("General_mass"); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("invalid error for unknown variable: %v", err)
	}
	if _, err := Locate("EMID_Iron1"); !errors.Is(err, ErrUnknownCut) {
		t.Fatalf("invalid error for missing cut: %v", err)
	}
}
