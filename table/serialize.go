package table

import (
	"fmt"
)

// Deserialize reads the table at path. It satisfies describe.Deserializer.
func Deserialize(path string) (any, error) {
	t, err := Read(path)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// SerializeCSV writes a *Table value to path as CSV. It satisfies
// describe.Serializer.
func SerializeCSV(v any, path string) error {
	t, err := asTable(v)
	if err != nil {
		return err
	}
	return WriteCSV(t, path)
}

// SerializeJSON writes a *Table value to path as a JSON array of row objects.
// It satisfies describe.Serializer.
func SerializeJSON(v any, path string) error {
	t, err := asTable(v)
	if err != nil {
		return err
	}
	return WriteJSON(t, path)
}

// SerializeXLSX writes a *Table value to path as an Excel workbook. It
// satisfies describe.Serializer.
func SerializeXLSX(v any, path string) error {
	t, err := asTable(v)
	if err != nil {
		return err
	}
	return WriteXLSX(t, path)
}

func asTable(v any) (*Table, error) {
	switch t := v.(type) {
	case *Table:
		if t == nil {
			return nil, ErrNotTable
		}
		return t, nil
	case Table:
		return &t, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotTable, v)
	}
}
