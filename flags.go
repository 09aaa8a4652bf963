package nanoplot

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatsFlag collects float values from a repeatable, comma-separated flag.
// The first Set call replaces any default values.
type FloatsFlag struct {
	Values  []float64
	beenSet bool
}

func (f *FloatsFlag) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Values = nil
	}

	for _, tok := range strings.Split(valueStr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		value, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("invalid float %q: %w", tok, err)
		}
		f.Values = append(f.Values, value)
	}
	return nil
}

func (f *FloatsFlag) String() string {
	if f == nil {
		return "[]"
	}
	return fmt.Sprint(f.Values)
}

// StringsFlag is the string counterpart of FloatsFlag.
type StringsFlag struct {
	Values  []string
	beenSet bool
}

func (f *StringsFlag) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Values = nil
	}

	for _, tok := range strings.Split(valueStr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		f.Values = append(f.Values, tok)
	}
	return nil
}

func (f *StringsFlag) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.Values, ",")
}
