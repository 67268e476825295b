// Package jsonformat writes rows as a JSON array of objects.
package jsonformat

import (
	"encoding/json"
	"fmt"
	"io"
)

type Formatter struct {
	fieldNames []string
	data       []map[string]any
	w          io.Writer
}

func New(fieldNames []string, w io.Writer) *Formatter {
	return &Formatter{
		fieldNames: fieldNames,
		data:       []map[string]any{},
		w:          w,
	}
}

// WriteRow adds a new object.
// Vals must be in the same order then the fieldNames that were passed to
// New.
func (f *Formatter) WriteRow(vals ...any) error {
	if len(vals) != len(f.fieldNames) {
		return fmt.Errorf("got %d values, having %d field names, expecting the same amount", len(vals), len(f.fieldNames))
	}

	entry := make(map[string]any, len(vals))
	for i, v := range vals {
		entry[f.fieldNames[i]] = v
	}

	f.data = append(f.data, entry)

	return nil
}

// Flush writes the objects as indented JSON array.
// On success the written objects are discarded.
func (f *Formatter) Flush() error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(f.data); err != nil {
		return err
	}

	f.data = f.data[:0]
	return nil
}
