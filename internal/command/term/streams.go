// Package term provides output streams and formatting helpers for terminal
// output.
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const separator = "------------------------------------------------------------------------------"

var errorPrefix = RedHighlight("ERROR:")

// Stream is a concurrency-safe output for terminal messages.
type Stream struct {
	stream io.Writer
	lock   sync.Mutex
}

func NewStream(out io.Writer) *Stream {
	return &Stream{stream: out}
}

func (s *Stream) Printf(format string, a ...any) {
	s.lock.Lock()
	defer s.lock.Unlock()

	fmt.Fprintf(s.stream, format, a...)
}

func (s *Stream) Println(a ...any) {
	s.lock.Lock()
	defer s.lock.Unlock()

	fmt.Fprintln(s.stream, a...)
}

// TaskPrintf prints a message that is prefixed with '<TASK-NAME>: '
func (s *Stream) TaskPrintf(taskName, format string, a ...any) {
	prefix := Highlight(fmt.Sprintf("%s: ", taskName))

	s.Printf(prefix+format, a...)
}

// ErrPrintln prints an error prefixed with "ERROR:", when msg is passed
// it is printed before the error.
func (s *Stream) ErrPrintln(err error, msg ...any) {
	if len(msg) == 0 {
		s.Printf("%s %s\n", errorPrefix, err)
		return
	}

	s.Printf("%s %s: %s\n", errorPrefix, strings.TrimSpace(fmt.Sprint(msg...)), err)
}

// ErrPrintf prints an error prefixed with "ERROR:" and the formatted message.
func (s *Stream) ErrPrintf(err error, format string, a ...any) {
	s.ErrPrintln(err, fmt.Sprintf(format, a...))
}

// PrintSep prints a separator line
func (s *Stream) PrintSep() {
	s.Println(separator)
}

func (s *Stream) Write(p []byte) (n int, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.stream.Write(p)
}
