package exec

// Result describes the result of a run Cmd.
type Result struct {
	Command  string
	Dir      string
	ExitCode int
	Output   []byte
}

// StrOutput returns Output as string.
func (r *Result) StrOutput() string {
	return string(r.Output)
}

// ExpectSuccess returns an ExitCodeError if the command did not exit with
// code 0.
func (r *Result) ExpectSuccess() error {
	if r.ExitCode != 0 {
		return &ExitCodeError{Result: r}
	}

	return nil
}
