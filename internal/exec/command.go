// Package exec runs external commands
package exec

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
)

var (
	// DefaultLogFn is the default debug print function.
	DefaultLogFn = func(string, ...any) {}
	// DefaultLogPrefix is the default prefix that is prepended to messages passed to the log function.
	DefaultLogPrefix = "exec: "
)

// maxLineLen is the longest output line that is read in one piece.
const maxLineLen = 1024 * 1024

// Cmd represents a command that can be run.
type Cmd struct {
	name string
	args []string
	dir  string
	env  []string

	stream        io.Writer
	logFn         func(format string, v ...any)
	logPrefix     string
	expectSuccess bool
}

// Command returns a new Cmd struct.
// If name contains no path separators, Command uses LookPath to
// resolve name to a complete path if possible. Otherwise it uses name directly
// as Path.
// By default a command is run in the current working directory and inherits
// the environment of the current process.
func Command(name string, arg ...string) *Cmd {
	return &Cmd{
		name:      name,
		args:      arg,
		logFn:     DefaultLogFn,
		logPrefix: DefaultLogPrefix,
	}
}

// ShellCommand returns a Cmd that runs script via "sh -c".
func ShellCommand(script string) *Cmd {
	return Command("sh", "-c", script)
}

// Directory changes the directory in which the command is executed.
func (c *Cmd) Directory(dir string) *Cmd {
	c.dir = dir
	return c
}

// SetEnv sets the environment variables that the process uses.
// Each element is in the format KEY=VALUE.
func (c *Cmd) SetEnv(env []string) *Cmd {
	c.env = env
	return c
}

// Stream writes every output line of the command to w while it runs.
func (c *Cmd) Stream(w io.Writer) *Cmd {
	c.stream = w
	return c
}

// LogFn sets the function that receives debug messages and the command output.
func (c *Cmd) LogFn(fn func(format string, v ...any)) *Cmd {
	c.logFn = fn
	return c
}

// LogPrefix sets a prefix that is prepended to the messages passed to the log function.
func (c *Cmd) LogPrefix(prefix string) *Cmd {
	c.logPrefix = prefix
	return c
}

// ExpectSuccess if called, Run() will return an error if the command did not
// exit with code 0.
func (c *Cmd) ExpectSuccess() *Cmd {
	c.expectSuccess = true
	return c
}

// Run executes the command and blocks until it terminated.
// Stdout and stderr of the process are combined.
func (c *Cmd) Run(ctx context.Context) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Dir = c.dir
	cmd.Env = c.env
	cmd.SysProcAttr = defSysProcAttr()

	outReader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = cmd.Stdout

	// Pdeathsig is bound to the thread that started the process:
	// https://github.com/golang/go/issues/27505#issuecomment-713706104
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c.logFn(c.logPrefix+"running '%s' in directory '%s'\n", cmdString(cmd), cmd.Dir)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var outBuf bytes.Buffer
	firstline := true
	in := bufio.NewScanner(outReader)
	in.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for in.Scan() {
		if c.stream != nil {
			fmt.Fprintln(c.stream, in.Text())
		}

		c.logFn(c.logPrefix + in.Text() + "\n")
		if firstline {
			firstline = false
		} else {
			outBuf.WriteRune('\n')
		}

		outBuf.Write(in.Bytes())
	}

	if err := in.Err(); err != nil {
		err = fmt.Errorf("reading output failed: %w", err)
		if waitErr := cmd.Wait(); waitErr != nil {
			return nil, fmt.Errorf("%w, executing the command failed too: %s", err, waitErr)
		}

		return nil, err
	}

	waitErr := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("running '%s' aborted: %w", cmdString(cmd), ctxErr)
	}

	exitCode, err := exitCodeFromErr(waitErr)
	if err != nil {
		return nil, err
	}

	c.logFn(c.logPrefix+"command terminated with exitCode: %d\n", exitCode)

	result := Result{
		Command:  cmdString(cmd),
		Dir:      cmd.Dir,
		ExitCode: exitCode,
		Output:   outBuf.Bytes(),
	}
	if result.Dir == "" {
		result.Dir = "."
	}

	if c.expectSuccess && exitCode != 0 {
		return nil, &ExitCodeError{Result: &result}
	}

	return &result, nil
}

func cmdString(cmd *exec.Cmd) string {
	// cmd.Args[0] contains the command name, cmd.Path the absolute command path,
	// omit cmd.Args[0] from the string
	if len(cmd.Args) > 1 {
		return fmt.Sprintf("%s %v", cmd.Path, strings.Join(cmd.Args[1:], " "))
	}

	return cmd.Path
}

func exitCodeFromErr(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), nil
	}

	return 0, err
}
