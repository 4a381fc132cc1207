package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// WriteJSON writes t to path as a JSON array with one object per row.
func WriteJSON(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeJSON(t, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// EncodeJSON writes t to w as a JSON array with one object per row. Object
// keys follow the table's column order: index labels first, then data
// values. Missing values are null.
func EncodeJSON(t *Table, w io.Writer) error {
	keys := t.jsonKeys()
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Data {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, key := range keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')

			var v any
			if j < len(t.IndexNames) {
				if i < len(t.Index) && j < len(t.Index[i]) {
					v = t.Index[i][j]
				}
			} else if f := row[j-len(t.IndexNames)]; !math.IsNaN(f) && !math.IsInf(f, 0) {
				v = f
			}
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("table: row %d key %q: %w", i, key, err)
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// jsonKeys names every field of a row object. Unnamed index columns are
// called "index", or "level_N" when there are several.
func (t *Table) jsonKeys() []string {
	keys := make([]string, 0, len(t.IndexNames)+len(t.Columns))
	for j, name := range t.IndexNames {
		switch {
		case name != "":
			keys = append(keys, name)
		case len(t.IndexNames) == 1:
			keys = append(keys, "index")
		default:
			keys = append(keys, fmt.Sprintf("level_%d", j))
		}
	}
	return append(keys, t.Columns...)
}
