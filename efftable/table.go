package efftable

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Dimensions of the data rows of a blank table.
const (
	NRows = 70
	NCols = 140
)

var (
	cutNames = func() []string {
		names := []string{"LowCut", "HighCut", "MidCut", "General"}
		for lo := 1; lo < 20; lo++ {
			names = append(names, fmt.Sprintf("%d_%d", lo, lo+1))
		}
		return names
	}()

	// in column order inside a cut group
	regionNames = []string{"", "Iron1", "Iron2", "Long1", "Long2", "IronFake"}

	// indexed by flavor offset
	flavorNames = []string{"Flav5", "Flav1", "Flav0", ""}

	variableNames = []string{
		"EMID", "pt", "dxy", "dz", "ISO", "CONV", "IP",
		"IPSig1", "IPSig2", "dzErr", "dxyErr", "dzSig", "dxySig", "eta",
	}
)

// Table is a grid of cells under a header row.
type Table struct {
	Header []string
	Cells  [][]string
}

// NewBlank returns a zeroed NRows x NCols table whose header names each
// (cut, region) column and whose first two columns name each row's
// variable and flavor.
func NewBlank() *Table {
	t := &Table{
		Header: make([]string, NCols),
		Cells:  make([][]string, NRows),
	}
	t.Header[0] = "Variable"
	t.Header[1] = "Flavor"
	for _, cut := range cutNames {
		for _, region := range regionNames {
			name := strings.TrimSuffix(cut+"_"+region, "_")
			col, err := Col(name)
			if err != nil {
				panic(err)
			}
			t.Header[col-1] = name
		}
	}

	for i := range t.Cells {
		row := make([]string, NCols)
		for j := 2; j < NCols; j++ {
			row[j] = "0"
		}
		t.Cells[i] = row
	}
	t.Cells[0][0] = "Title"
	for _, v := range variableNames {
		for off, flav := range flavorNames {
			i := VariableRow(v) - off - 2
			t.Cells[i][0] = v
			t.Cells[i][1] = flav
		}
	}
	return t
}

// ReadCSV reads a table template: a header record followed by data records.
func ReadCSV(r io.Reader) (*Table, error) {
	recs, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV table: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("could not read CSV table: missing header")
	}
	return &Table{Header: recs[0], Cells: recs[1:]}, nil
}

// Put stores n in the cell addressed by label.
func (t *Table) Put(label string, n int) error {
	c, err := Locate(label)
	if err != nil {
		return err
	}
	if c.Row >= len(t.Cells) || c.Col >= len(t.Cells[c.Row]) {
		return fmt.Errorf("%q decodes to (%d, %d) in a %dx%d table: %w",
			label, c.Row, c.Col, len(t.Cells), len(t.Header), ErrOutOfRange,
		)
	}
	t.Cells[c.Row][c.Col] = strconv.Itoa(n)
	return nil
}

// ParseEntry splits a "label,count" line.
func ParseEntry(line string) (string, int, error) {
	toks := strings.Split(line, ",")
	if len(toks) < 2 {
		return "", 0, fmt.Errorf("invalid entry %q: missing count", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(toks[1]))
	if err != nil {
		return "", 0, fmt.Errorf("invalid entry %q: %w", line, err)
	}
	return strings.TrimSpace(toks[0]), n, nil
}

// Fill puts every "label,count" line of r into t and returns the number of
// entries. Blank lines are skipped.
func (t *Table) Fill(r io.Reader) (int, error) {
	var (
		sc = bufio.NewScanner(r)
		n  = 0
		ln = 0
	)
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		label, count, err := ParseEntry(line)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", ln, err)
		}
		if err := t.Put(label, count); err != nil {
			return n, fmt.Errorf("line %d: %w", ln, err)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("could not scan entries: %w", err)
	}
	return n, nil
}

// Value returns the numeric content of a cell. Empty cells read as 0.
func (t *Table) Value(row, col int) (float64, error) {
	if row < 0 || row >= len(t.Cells) || col < 0 || col >= len(t.Cells[row]) {
		return 0, fmt.Errorf("cell (%d, %d): %w", row, col, ErrOutOfRange)
	}
	cell := strings.TrimSpace(t.Cells[row][col])
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("cell (%d, %d): %w", row, col, err)
	}
	return v, nil
}

// WriteCSV writes t with a leading, unnamed index column.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{""}, t.Header...)); err != nil {
		return fmt.Errorf("could not write CSV header: %w", err)
	}
	for i, row := range t.Cells {
		if err := cw.Write(append([]string{strconv.Itoa(i)}, row...)); err != nil {
			return fmt.Errorf("could not write CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const xlsxSheet = "FI"

// WriteXLSX saves t as a single sheet spreadsheet, numeric cells as numbers.
func (t *Table) WriteXLSX(fname string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("could not rename sheet: %w", err)
	}

	writeRow := func(i int, idx string, cells []string) error {
		vs := make([]any, 0, len(cells)+1)
		vs = append(vs, idx)
		for _, cell := range cells {
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				vs = append(vs, v)
				continue
			}
			vs = append(vs, cell)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		return f.SetSheetRow(xlsxSheet, axis, &vs)
	}

	if err := writeRow(0, "", t.Header); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	for i, row := range t.Cells {
		if err := writeRow(i+1, strconv.Itoa(i), row); err != nil {
			return fmt.Errorf("could not write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(fname); err != nil {
		return fmt.Errorf("could not save %q: %w", fname, err)
	}
	return nil
}
