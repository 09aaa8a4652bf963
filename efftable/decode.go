// Package efftable fills a label-addressed table of electron counts and
// derives selection efficiencies from it.
//
// A label such as "12_13_EMID_Iron1_Flav1" is decoded into a cell: the
// variable and the flavor select the row, the pt cut and the region select
// the column. Every decoder matches case-insensitive substrings and the
// first listed substring wins.
package efftable

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCut = errors.New("efftable: unknown cut")
	ErrOutOfRange = errors.New("efftable: cell out of range")
)

type match struct {
	sub string
	val int
}

func firstMatch(label string, ms []match) (int, bool) {
	label = strings.ToLower(label)
	for _, m := range ms {
		if strings.Contains(label, m.sub) {
			return m.val, true
		}
	}
	return 0, false
}

const noFlavor = 3

var flavors = []match{
	{"flav0", 2},
	{"flav1", 1},
	{"flav5", 0},
}

// FlavorOffset returns the row offset of the flavor named in label.
func FlavorOffset(label string) int {
	if v, ok := firstMatch(label, flavors); ok {
		return v
	}
	return noFlavor
}

var (
	variables = []match{
		{"emid", 6},
		{"pt", 11},
		{"dxy", 16},
		{"dz", 21},
		{"iso", 26},
		{"conv", 31},
		{"ip", 36},
		{"eta", 71},
	}

	// refinements of the variables above sharing their prefix
	subVariables = map[int][]match{
		16: {{"dxyerr", 56}, {"dxysig", 66}},
		21: {{"dzsig", 61}, {"dzerr", 51}},
		36: {{"ipsig1", 41}, {"ipsig2", 46}},
	}
)

// VariableRow returns the base row of the variable named in label, 0 when
// no variable matches.
func VariableRow(label string) int {
	v, ok := firstMatch(label, variables)
	if !ok {
		return 0
	}
	if sub, ok := firstMatch(label, subVariables[v]); ok {
		return sub
	}
	return v
}

const noRegion = 5

var regions = []match{
	{"fake", 0},
	{"long2", 1},
	{"long1", 2},
	{"iron2", 3},
	{"iron1", 4},
}

// RegionOffset returns the column offset of the region named in label.
func RegionOffset(label string) int {
	if v, ok := firstMatch(label, regions); ok {
		return v
	}
	return noRegion
}

// GroupSize is the number of columns of a cut: the cut alone, then its 5
// regions.
const GroupSize = 6

var cuts = func() []match {
	ms := []match{
		{"lowcut", 8},
		{"highcut", 14},
		{"midcut", 20},
		{"general", 26},
	}
	for lo := 1; lo < 20; lo++ {
		ms = append(ms, match{fmt.Sprintf("%d_%d", lo, lo+1), 32 + GroupSize*(lo-1)})
	}
	return ms
}()

// CutColumn returns the base column of the pt cut named in label.
func CutColumn(label string) (int, error) {
	v, ok := firstMatch(label, cuts)
	if !ok {
		return 0, fmt.Errorf("%q: %w", label, ErrUnknownCut)
	}
	return v, nil
}

func Row(label string) int {
	return VariableRow(label) - FlavorOffset(label)
}

func Col(label string) (int, error) {
	c, err := CutColumn(label)
	if err != nil {
		return 0, err
	}
	return c - RegionOffset(label), nil
}

// Cell is a zero-based position in the data rows of a table.
type Cell struct {
	Row, Col int
}

// Locate decodes label into a cell. Negative positions are an error.
func Locate(label string) (Cell, error) {
	col, err := Col(label)
	if err != nil {
		return Cell{}, err
	}
	c := Cell{Row: Row(label) - 2, Col: col - 1}
	if c.Row < 0 || c.Col < 0 {
		return c, fmt.Errorf("%q decodes to (%d, %d): %w", label, c.Row, c.Col, ErrOutOfRange)
	}
	return c, nil
}
