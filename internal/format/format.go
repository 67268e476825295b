// Package format writes rows of data in different output formats.
package format

// Formatter writes rows, the output is complete after Flush was called.
type Formatter interface {
	WriteRow(Row ...any) error
	Flush() error
}
