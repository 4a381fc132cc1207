package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV loads a comma-separated table from path.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// DecodeCSV reads a comma-separated table from r.
func DecodeCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return fromRecords(records[0], records[1:])
}

// WriteCSV writes t to path as comma-separated values with a header row.
func WriteCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCSV(t, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// EncodeCSV writes t to w as comma-separated values with a header row.
func EncodeCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header()); err != nil {
		return err
	}
	for i := range t.Data {
		if err := cw.Write(t.record(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
