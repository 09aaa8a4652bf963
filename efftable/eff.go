package efftable

import (
	"fmt"
	"math"
	"strconv"

	"go-hep.org/x/hep/hbook"
)

// FirstGroupCol is the column of the first cut group.
const FirstGroupCol = 2

// Efficiencies normalises a row of counts. Each region column of a cut
// group is divided by the group's first column, which becomes 1. Errs holds
// the binomial errors sqrt(eff*(1-eff)/N) with N the group's first column.
// A zero denominator and columns outside any group give NaN.
func Efficiencies(counts []float64) (effs, errs []float64) {
	effs = make([]float64, len(counts))
	errs = make([]float64, len(counts))
	for i := range effs {
		effs[i] = math.NaN()
		errs[i] = math.NaN()
	}

	for g := FirstGroupCol; g+GroupSize <= len(counts); g += GroupSize {
		n := counts[g]
		if n == 0 {
			continue
		}
		for i := g; i < g+GroupSize; i++ {
			eff := counts[i] / n
			effs[i] = eff
			errs[i] = math.Sqrt(eff * (1 - eff) / n)
		}
	}
	return effs, errs
}

// Counts returns the data row of variable for flavor, e.g. ("EMID", "Flav1").
// An empty flavor selects the row summed over flavors.
func (t *Table) Counts(variable, flavor string) ([]float64, error) {
	row := VariableRow(variable) - FlavorOffset(flavor) - 2
	if row < 0 || row >= len(t.Cells) {
		return nil, fmt.Errorf("row of %q %q: %w", variable, flavor, ErrOutOfRange)
	}
	counts := make([]float64, len(t.Cells[row]))
	for j := range counts {
		v, err := t.Value(row, j)
		if err != nil {
			if j < FirstGroupCol {
				// row labels
				continue
			}
			return nil, err
		}
		counts[j] = v
	}
	return counts, nil
}

// Curve is an efficiency as a function of the electron pt.
type Curve struct {
	Name string
	X    []float64
	Y    []float64
	Err  []float64
}

// S2D returns the points of c, without the ones of undefined efficiency.
func (c Curve) S2D() *hbook.S2D {
	var pts []hbook.Point2D
	for i := range c.X {
		if math.IsNaN(c.Y[i]) {
			continue
		}
		err := c.Err[i]
		if math.IsNaN(err) {
			err = 0
		}
		pts = append(pts, hbook.Point2D{
			X:    c.X[i],
			Y:    c.Y[i],
			ErrX: hbook.Range{Min: 0.5, Max: 0.5},
			ErrY: hbook.Range{Min: err, Max: err},
		})
	}
	s := hbook.NewS2D(pts...)
	s.Annotation()["name"] = c.Name
	return s
}

// Curves returns, for each region, the efficiency of variable for flavor in
// the 1 GeV windows from 1 to 20 GeV, at the window centres.
func Curves(t *Table, variable, flavor string, regions []string) ([]Curve, error) {
	counts, err := t.Counts(variable, flavor)
	if err != nil {
		return nil, fmt.Errorf("could not compute efficiencies: %w", err)
	}
	effs, errs := Efficiencies(counts)

	curves := make([]Curve, 0, len(regions))
	for _, region := range regions {
		c := Curve{Name: region + "_" + flavor}
		for lo := 1; lo < 20; lo++ {
			cut := strconv.Itoa(lo) + "_" + strconv.Itoa(lo+1)
			base, err := CutColumn(cut)
			if err != nil {
				return nil, err
			}
			col := base - RegionOffset(region) - 1
			if col >= len(effs) {
				return nil, fmt.Errorf("column of %q %q: %w", cut, region, ErrOutOfRange)
			}
			c.X = append(c.X, float64(lo)+0.5)
			c.Y = append(c.Y, effs[col])
			c.Err = append(c.Err, errs[col])
		}
		curves = append(curves, c)
	}
	return curves, nil
}
