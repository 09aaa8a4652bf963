package tunesum

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, fname, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readCSV(t *testing.T, fname string) [][]string {
	t.Helper()
	f, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return recs
}

const results = `bin 1 ttbar a b 3 4
bin 2 ttbar a b 1.5 0
bin 1 TuneCP5 a b 2 1
bin 3 other a b 9 9
`

func TestDecode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "gold.txt"), results+"ttbar and CP5 a b 1 1\n")

	ttbar, cp5, err := Decode(dir, "gold.txt")
	if err != nil {
		t.Fatalf("could not decode: %+v", err)
	}
	if got, want := len(ttbar), 3; got != want {
		t.Fatalf("invalid number of ttbar lines: got=%d, want=%d", got, want)
	}
	if diff := cmp.Diff([]string{"bin 1 TuneCP5 a b 2 1"}, cp5); diff != "" {
		t.Fatalf("invalid CP5 lines (-want +got):\n%s", diff)
	}
}

func TestSum(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "gold_SR1.txt"), results)
	writeFile(t, filepath.Join(dir, "empty.txt"), "nothing here\n")
	writeFile(t, filepath.Join(dir, "bad.txt"), "ttbar 1 2\n")

	got, err := Sum(dir, "gold_SR1.txt")
	if err != nil {
		t.Fatalf("could not sum: %+v", err)
	}
	want := Yield{Name: "gold_SR1.txt", TTbar: 4.5, TTbarErr: 4, CP5: 2, CP5Err: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("invalid yield (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"gold_SR1.txt", "4.5", "4", "2", "1"}, got.Record()); diff != "" {
		t.Fatalf("invalid record (-want +got):\n%s", diff)
	}

	got, err = Sum(dir, "empty.txt")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"empty.txt", "0", "0", "0", "0"}, got.Record()); diff != "" {
		t.Fatalf("invalid record (-want +got):\n%s", diff)
	}

	if _, err := Sum(dir, "bad.txt"); err == nil {
		t.Fatalf("expected an error for a malformed line")
	}
	if _, err := Sum(dir, "missing.txt"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestTierOf(t *testing.T) {
	for _, tc := range []struct {
		name string
		want Tier
		ok   bool
	}{
		{"SR_Gold.txt", Gold, true},
		{"sr_slvr.txt", Silver, true},
		{"sr_BRONZE.txt", Bronze, true},
		{"gold_slvr.txt", Gold, true},
		{"silver.txt", 0, false},
	} {
		got, ok := TierOf(tc.name)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%q: got=(%v, %v), want=(%v, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFinder(t *testing.T) {
	var (
		root = t.TempDir()
		out  = t.TempDir()
		dir  = filepath.Join(root, "TTJets_1L")
	)
	writeFile(t, filepath.Join(dir, "gold_a.txt"), "bin 1 ttbar a b 1 3\n")
	writeFile(t, filepath.Join(dir, "gold_SR1.txt"), results)
	writeFile(t, filepath.Join(dir, "slvr_a.txt"), "bin 1 CP5 a b 7 2\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), results)
	writeFile(t, filepath.Join(dir, "sub", "bron_x.txt"), results)

	fnames, err := Finder(dir, out)
	if err != nil {
		t.Fatalf("could not run finder: %+v", err)
	}
	want := []string{
		filepath.Join(out, "TTJets_1L_gold.csv"),
		filepath.Join(out, "TTJets_1L_silver.csv"),
		filepath.Join(out, "TTJets_1L_bronze.csv"),
	}
	if diff := cmp.Diff(want, fnames); diff != "" {
		t.Fatalf("invalid tables (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([][]string{
		Header,
		{"gold_SR1.txt", "4.5", "4", "2", "1"},
		{"gold_a.txt", "1", "3", "0", "0"},
	}, readCSV(t, fnames[0])); diff != "" {
		t.Fatalf("invalid gold table (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{
		Header,
		{"slvr_a.txt", "0", "0", "7", "2"},
	}, readCSV(t, fnames[1])); diff != "" {
		t.Fatalf("invalid silver table (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{Header}, readCSV(t, fnames[2])); diff != "" {
		t.Fatalf("invalid bronze table (-want +got):\n%s", diff)
	}

	// a second run truncates the tables.
	if _, err := Finder(dir, out); err != nil {
		t.Fatal(err)
	}
	if got := len(readCSV(t, fnames[0])); got != 3 {
		t.Fatalf("gold table was not truncated: %d records", got)
	}
}

func TestSummaryQuadrature(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "TTJets_0L_gold.csv")
	writeFile(t, fname, `Name,TTbar,TTbar_Err,CP5,CP5_Err
a,1,3,10,0.5
b,2,4,20,0.5
c,3,0,30,0.5
d,4,0,40,0.5
`)

	got, err := Summary(fname)
	if err != nil {
		t.Fatalf("could not summarize: %+v", err)
	}
	if got.Name != "TTJets_0L_gold.csv" {
		t.Fatalf("invalid name %q", got.Name)
	}
	if got.TTbar != 10 || got.CP5 != 100 {
		t.Fatalf("invalid totals: %+v", got)
	}
	if math.Abs(got.TTbarErr-5) > 1e-12 {
		t.Fatalf("invalid ttbar error: got=%v, want=5", got.TTbarErr)
	}
	if math.Abs(got.CP5Err-1) > 1e-12 {
		t.Fatalf("invalid CP5 error: got=%v, want=1", got.CP5Err)
	}
}

func TestSumFind(t *testing.T) {
	var (
		root = t.TempDir()
		out  = t.TempDir()
	)
	for _, ch := range Channels {
		writeFile(t, filepath.Join(root, "TTJets"+ch, "gold_SR1.txt"), results)
	}

	if err := SumFind(root, "TTJets", out); err != nil {
		t.Fatalf("could not run: %+v", err)
	}

	recs := readCSV(t, filepath.Join(out, "Summary.csv"))
	if got, want := len(recs), 1+len(Channels)*len(Tiers); got != want {
		t.Fatalf("invalid number of records: got=%d, want=%d", got, want)
	}
	if diff := cmp.Diff([]string{"TTJets_0L_gold.csv", "4.5", "4", "2", "1"}, recs[1]); diff != "" {
		t.Fatalf("invalid summary row (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"TTJets_0L_silver.csv", "0", "0", "0", "0"}, recs[2]); diff != "" {
		t.Fatalf("invalid summary row (-want +got):\n%s", diff)
	}

	if err := SumFind(root, "WJets", out); err == nil {
		t.Fatalf("expected an error for a missing sample")
	}
}
