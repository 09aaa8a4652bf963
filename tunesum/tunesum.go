// Package tunesum sums the ttbar and TuneCP5 yields of per-channel result
// files into gold, silver and bronze tables.
package tunesum

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Header of the tier and summary tables.
var Header = []string{"Name", "TTbar", "TTbar_Err", "CP5", "CP5_Err"}

// Yield is a pair of summed yields with their errors.
type Yield struct {
	Name     string
	TTbar    float64
	TTbarErr float64
	CP5      float64
	CP5Err   float64
}

func (y Yield) Record() []string {
	return []string{
		y.Name,
		format(y.TTbar), format(y.TTbarErr),
		format(y.CP5), format(y.CP5Err),
	}
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Decode splits the lines of dir/name into ttbar lines and CP5 lines.
// A line mentioning both is a ttbar line.
func Decode(dir, name string) (ttbar, cp5 []string, err error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, nil, fmt.Errorf("could not open result file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.Contains(line, "ttbar"):
			ttbar = append(ttbar, line)
		case strings.Contains(line, "CP5"):
			cp5 = append(cp5, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("could not read %q: %w", name, err)
	}
	return ttbar, cp5, nil
}

// Yield and error are the 6th and 7th fields of a line split at single spaces.
const (
	yieldField = 5
	errField   = 6
)

func parse(lines []string) (yields, errs []float64, err error) {
	for _, line := range lines {
		toks := strings.Split(line, " ")
		if len(toks) <= errField {
			return nil, nil, fmt.Errorf("invalid line %q: %d fields", line, len(toks))
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(toks[yieldField]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid yield in %q: %w", line, err)
		}
		e, err := strconv.ParseFloat(strings.TrimSpace(toks[errField]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid error in %q: %w", line, err)
		}
		yields = append(yields, y)
		errs = append(errs, e)
	}
	return yields, errs, nil
}

// Sum adds up the yields of dir/name, errors in quadrature.
func Sum(dir, name string) (Yield, error) {
	ttbar, cp5, err := Decode(dir, name)
	if err != nil {
		return Yield{}, err
	}

	ty, te, err := parse(ttbar)
	if err != nil {
		return Yield{}, fmt.Errorf("could not sum ttbar yields of %q: %w", name, err)
	}
	cy, ce, err := parse(cp5)
	if err != nil {
		return Yield{}, fmt.Errorf("could not sum CP5 yields of %q: %w", name, err)
	}

	return Yield{
		Name:     name,
		TTbar:    floats.Sum(ty),
		TTbarErr: floats.Norm(te, 2),
		CP5:      floats.Sum(cy),
		CP5Err:   floats.Norm(ce, 2),
	}, nil
}
