package nanoplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places labelled major ticks on round values and unlabelled
// minor ticks between them, aiming for NSuggestedTicks major ticks.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	n := t.NSuggestedTicks
	if n < 2 {
		n = 4
	}
	if !(max > min) || math.IsInf(max-min, 0) {
		// a single labelled tick for a point-like or unusable range
		if math.IsNaN(min) || math.IsInf(min, 0) {
			return nil
		}
		return []plot.Tick{{Value: min, Label: strconv.FormatFloat(min, 'g', -1, 64)}}
	}

	mult, major := majorStep(min, max, n)
	minor := major / 2
	switch mult {
	case 3, 6:
		minor = major / 3
	case 5:
		minor = major / 5
	}

	prec := int(math.Ceil(math.Log10(math.Max(math.Abs(min), math.Abs(max))+major)) - math.Floor(math.Log10(major)))

	var ticks []plot.Tick
	majors := make(map[int64]bool)
	for i := math.Ceil(min / major); i*major <= max; i++ {
		v := roundTo(i*major, prec)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)})
		majors[int64(math.Round(i*major/minor))] = true
	}

	for j := math.Ceil(min / minor); j*minor <= max; j++ {
		if majors[int64(j)] {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: j * minor})
	}
	return ticks
}

// majorStep returns the multiplier and the spacing of major ticks.
func majorStep(min, max float64, n int) (int, float64) {
	span := max - min
	tens := math.Pow10(int(math.Floor(math.Log10(span))))
	for span/tens < float64(n-1) {
		tens /= 10
	}

	mult := int(span / tens / float64(n-1))
	switch mult {
	case 0:
		mult = 1
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return mult, float64(mult) * tens
}

func roundTo(x float64, prec int) float64 {
	if x == 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	v := math.Round(x*pow) / pow
	if v == 0 {
		// drop the sign bit
		return 0
	}
	return v
}
