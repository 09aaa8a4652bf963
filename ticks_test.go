package nanoplot

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot"
)

func TestPreciseTicks(t *testing.T) {
	for _, tc := range []struct {
		min, max float64
		n        int
		labels   []string
		nminor   int
	}{
		{
			min: 0, max: 20, n: 5,
			labels: []string{"0", "5", "10", "15", "20"},
			nminor: 16,
		},
		{
			min: 0, max: 1, n: 5,
			labels: []string{"0", "0.2", "0.4", "0.6", "0.8", "1"},
			nminor: 5,
		},
	} {
		ticks := PreciseTicks{NSuggestedTicks: tc.n}.Ticks(tc.min, tc.max)

		var (
			labels []string
			nminor int
		)
		for _, tick := range ticks {
			if tick.IsMinor() {
				nminor++
				continue
			}
			labels = append(labels, tick.Label)
		}
		if diff := cmp.Diff(tc.labels, labels); diff != "" {
			t.Errorf("[%g, %g]: invalid major ticks (-want +got):\n%s", tc.min, tc.max, diff)
		}
		if nminor != tc.nminor {
			t.Errorf("[%g, %g]: invalid number of minor ticks: got=%d, want=%d", tc.min, tc.max, nminor, tc.nminor)
		}
	}
}

func TestPreciseTicksEmptyRange(t *testing.T) {
	for _, tc := range []struct {
		min, max float64
		want     []plot.Tick
	}{
		{1, 1, []plot.Tick{{Value: 1, Label: "1"}}},
		{2.5, 0, []plot.Tick{{Value: 2.5, Label: "2.5"}}},
		{math.NaN(), 1, nil},
		{math.Inf(-1), 1, nil},
	} {
		got := PreciseTicks{NSuggestedTicks: 5}.Ticks(tc.min, tc.max)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("[%g, %g]: invalid ticks (-want +got):\n%s", tc.min, tc.max, diff)
		}
	}
}
