package exec

import "fmt"

// ExitCodeError is returned from Run() when a command exited with a code != 0
// and ExpectSuccess() was set.
type ExitCodeError struct {
	*Result
}

// Error returns the error description.
func (e *ExitCodeError) Error() string {
	if len(e.Output) == 0 {
		return fmt.Sprintf("exec: running '%s' in directory '%s' exited with code %d, expected 0",
			e.Command, e.Dir, e.ExitCode)
	}

	return fmt.Sprintf("exec: running '%s' in directory '%s' exited with code %d, expected 0, output: '%s'",
		e.Command, e.Dir, e.ExitCode, e.Output)
}
