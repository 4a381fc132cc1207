package table

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Errors returned by the table readers and writers.
var (
	ErrEmpty             = errors.New("table: no header row")
	ErrRaggedRow         = errors.New("table: row length does not match header")
	ErrUnsupportedFormat = errors.New("table: unsupported file format")
	ErrNotTable          = errors.New("table: value is not a *Table")
)

// Table is a labeled numeric matrix.
//
// Index[i] holds the labels of row i, one per IndexNames entry. Data[i]
// holds the values of row i, one per Columns entry. Missing values are NaN.
type Table struct {
	IndexNames []string
	Columns    []string
	Index      [][]string
	Data       [][]float64
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.Data)
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	j := indexOf(t.Columns, name)
	if j < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Data))
	for i, row := range t.Data {
		out[i] = row[j]
	}
	return out, true
}

// Concat stacks the rows of b under the rows of a. Data columns are aligned
// by name; a column missing from one table is NaN in its rows. Index columns
// are aligned by position and the index names of a win.
func Concat(a, b *Table) *Table {
	columns := append([]string(nil), a.Columns...)
	for _, c := range b.Columns {
		if indexOf(columns, c) < 0 {
			columns = append(columns, c)
		}
	}

	names := a.IndexNames
	if len(b.IndexNames) > len(names) {
		names = b.IndexNames
	}
	out := &Table{
		IndexNames: append([]string(nil), names...),
		Columns:    columns,
	}
	for _, src := range []*Table{a, b} {
		pos := make([]int, len(columns))
		for j, c := range columns {
			pos[j] = indexOf(src.Columns, c)
		}
		for i, row := range src.Data {
			labels := make([]string, len(names))
			if i < len(src.Index) {
				copy(labels, src.Index[i])
			}
			values := make([]float64, len(columns))
			for j, p := range pos {
				if p < 0 {
					values[j] = math.NaN()
				} else {
					values[j] = row[p]
				}
			}
			out.Index = append(out.Index, labels)
			out.Data = append(out.Data, values)
		}
	}
	return out
}

// Read loads a table, choosing the reader by file extension. Files that are
// not .xlsx are read as CSV.
func Read(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	case ".xls":
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	default:
		return ReadCSV(path)
	}
}

// fromRecords builds a table from a header and string rows.
func fromRecords(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmpty
	}

	nIndex := 0
	for j, name := range header {
		first := ""
		if len(rows) > 0 && j < len(rows[0]) {
			first = rows[0][j]
		}
		if !isIndexColumn(name, first) {
			break
		}
		nIndex++
	}

	t := &Table{Columns: append([]string(nil), header[nIndex:]...)}
	for _, name := range header[:nIndex] {
		t.IndexNames = append(t.IndexNames, indexName(name))
	}
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrRaggedRow, i+1, len(row), len(header))
		}
		// Spreadsheet rows omit trailing empty cells.
		for len(row) < len(header) {
			row = append(row, "")
		}
		values := make([]float64, len(header)-nIndex)
		for j, cell := range row[nIndex:] {
			v, err := parseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("table: row %d column %q: %w", i+1, t.Columns[j], err)
			}
			values[j] = v
		}
		labels := make([]string, nIndex)
		copy(labels, row[:nIndex])
		t.Index = append(t.Index, labels)
		t.Data = append(t.Data, values)
	}
	return t, nil
}

func isIndexColumn(header, first string) bool {
	if header == "" || strings.HasPrefix(header, "Unnamed") || strings.HasPrefix(header, "_") {
		return true
	}
	if strings.TrimSpace(first) == "" {
		return false
	}
	_, err := parseValue(first)
	return err != nil
}

// indexName prefixes an index column name with an underscore. Unnamed index
// columns stay unnamed.
func indexName(name string) string {
	if name == "" || strings.HasPrefix(name, "Unnamed") {
		return ""
	}
	if strings.HasPrefix(name, "_") {
		return name
	}
	return "_" + name
}

func parseValue(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "", "nan", "na", "n/a", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// header returns the column names as written: index names then data columns.
func (t *Table) header() []string {
	return append(append([]string(nil), t.IndexNames...), t.Columns...)
}

// record returns row i as written.
func (t *Table) record(i int) []string {
	rec := make([]string, 0, len(t.IndexNames)+len(t.Columns))
	for j := range t.IndexNames {
		label := ""
		if i < len(t.Index) && j < len(t.Index[i]) {
			label = t.Index[i][j]
		}
		rec = append(rec, label)
	}
	for _, v := range t.Data[i] {
		rec = append(rec, formatValue(v))
	}
	return rec
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
