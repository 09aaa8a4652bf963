package nanoplot

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFloatsFlag(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want []float64
	}{
		{
			name: "defaults",
			want: []float64{1, 5},
		},
		{
			name: "comma",
			args: []string{"-edges", "1,2.5,3"},
			want: []float64{1, 2.5, 3},
		},
		{
			name: "repeated",
			args: []string{"-edges", "10", "-edges", "15, 20"},
			want: []float64{10, 15, 20},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			edges := FloatsFlag{Values: []float64{1, 5}}
			fset := flag.NewFlagSet(tc.name, flag.ContinueOnError)
			fset.Var(&edges, "edges", "pt edges")
			if err := fset.Parse(tc.args); err != nil {
				t.Fatalf("could not parse args: %+v", err)
			}
			if diff := cmp.Diff(tc.want, edges.Values); diff != "" {
				t.Fatalf("invalid values (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFloatsFlagInvalid(t *testing.T) {
	var f FloatsFlag
	if err := f.Set("1,x"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestStringsFlag(t *testing.T) {
	groups := StringsFlag{Values: []string{"General"}}
	if err := groups.Set("Iron1,Long1"); err != nil {
		t.Fatal(err)
	}
	if err := groups.Set(" IronFake "); err != nil {
		t.Fatal(err)
	}
	want := []string{"Iron1", "Long1", "IronFake"}
	if diff := cmp.Diff(want, groups.Values); diff != "" {
		t.Fatalf("invalid values (-want +got):\n%s", diff)
	}
	if got, want := groups.String(), "Iron1,Long1,IronFake"; got != want {
		t.Fatalf("invalid string: got=%q, want=%q", got, want)
	}
}
