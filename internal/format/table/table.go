// Package table writes rows as space aligned columns.
package table

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// emptyCell is printed for columns that are nil or an empty string.
const emptyCell = "-"

// Formatter converts Rows into an ASCII table format with space separated
// columns
type Formatter struct {
	tabWriter *tabwriter.Writer
}

// New returns a Formatter that writes to out, if headers is not empty it's
// written as first row.
func New(headers []string, out io.Writer) *Formatter {
	f := Formatter{
		tabWriter: tabwriter.NewWriter(out, 0, 0, 4, ' ', 0),
	}

	if len(headers) > 0 {
		_, _ = fmt.Fprintln(f.tabWriter, strings.Join(headers, "\t"))
	}

	return &f
}

// WriteRow writes a row to the tabwriter buffer
func (f *Formatter) WriteRow(row ...any) error {
	var sb strings.Builder

	for i, col := range row {
		if i > 0 {
			sb.WriteByte('\t')
		}

		s := ""
		if col != nil {
			s = fmt.Sprint(col)
		}

		if s == "" {
			s = emptyCell
		}

		sb.WriteString(s)
	}

	_, err := fmt.Fprintln(f.tabWriter, sb.String())
	return err
}

// Flush writes the buffered rows, it must be called after all rows were
// written.
func (f *Formatter) Flush() error {
	return f.tabWriter.Flush()
}
