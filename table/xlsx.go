package table

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads the first sheet of an Excel workbook.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	t, err := fromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteXLSX writes t to path as a single-sheet workbook. Missing values are
// left as empty cells.
func WriteXLSX(t *Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, 0, len(t.IndexNames)+len(t.Columns))
	for _, name := range t.header() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range t.Data {
		values := make([]any, 0, len(header))
		for j := range t.IndexNames {
			label := ""
			if i < len(t.Index) && j < len(t.Index[i]) {
				label = t.Index[i][j]
			}
			values = append(values, label)
		}
		for _, v := range row {
			if math.IsNaN(v) {
				values = append(values, nil)
			} else {
				values = append(values, v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
