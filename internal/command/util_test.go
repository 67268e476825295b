package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/juiceinc/jbwatch/internal/command/term"
	"github.com/juiceinc/jbwatch/internal/exec"
	"github.com/juiceinc/jbwatch/internal/log"
	"github.com/juiceinc/jbwatch/internal/testutils/logwriter"
)

// interceptCmdOutput changes the stdout and stderr streams to that the
// commands write to the returned buffers, all output is additionally still
// logged via the test logger
func interceptCmdOutput(t *testing.T) (stdoutBuf, stderrBuf *bytes.Buffer) {
	var bufStdout bytes.Buffer
	var bufStderr bytes.Buffer

	oldStdout := stdout
	stdout = term.NewStream(logwriter.New(t, &bufStdout))
	oldStderr := stderr
	stderr = term.NewStream(logwriter.New(t, &bufStderr))

	t.Cleanup(func() {
		stdout = oldStdout
		stderr = oldStderr
	})

	return &bufStdout, &bufStderr
}

type exitInfo struct {
	Code int
}

func (e *exitInfo) String() string {
	return fmt.Sprintf("program terminated with exit code: %d", e.Code)
}

// initTest does the following:
// - changes the exitFunc to panic instead of calling os.Exit(),
// - changes stdout and stderr streams for the command to be redirect to the test logger
// - changes the exec debug function to the test logger,
// - unsets the configuration file environment variable
func initTest(t *testing.T) {
	t.Helper()

	oldExitFunc := exitFunc
	exitFunc = func(code int) {
		panic(&exitInfo{Code: code})
	}

	t.Cleanup(func() {
		exitFunc = oldExitFunc
	})

	t.Setenv(envVarConfig, "")

	redirectOutputToLogger(t)
}

func redirectOutputToLogger(t *testing.T) {
	// TODO: when tests are run in parallel this will cause unexpected
	// results, global package vars are modified that would affect all
	// parallel running tests
	log.RedirectToTestingLog(t)

	oldExecDebugFfN := exec.DefaultLogFn
	exec.DefaultLogFn = t.Logf

	oldStdout := stdout
	stdout = term.NewStream(logwriter.New(t, io.Discard))
	oldStderr := stderr
	stderr = term.NewStream(logwriter.New(t, io.Discard))

	t.Cleanup(func() {
		exec.DefaultLogFn = oldExecDebugFfN
		stdout = oldStdout
		stderr = oldStderr
	})
}

// withCtx replaces the context that commands use.
func withCtx(t *testing.T, c context.Context) {
	oldCtx := ctx
	ctx = c

	t.Cleanup(func() {
		ctx = oldCtx
	})
}

type cmdExecuter interface {
	Execute() error
}

// execCheck runs cmd and fails the test if it does not exit with
// expectedExitCode, -1 accepts any exit code.
func execCheck(t *testing.T, cmd cmdExecuter, expectedExitCode int) {
	t.Helper()

	defer func() {
		t.Helper()

		r := recover()
		if r == nil {
			return
		}

		if info, ok := r.(*exitInfo); ok {
			if expectedExitCode == -1 {
				return
			}

			if info.Code != expectedExitCode {
				t.Fatalf("command exited with code %d, expected: %d", info.Code, expectedExitCode)
			}

			return
		}

		panic(r)
	}()

	err := cmd.Execute()
	require.NoError(t, err)

	require.Equalf(
		t,
		exitCodeSuccess, expectedExitCode,
		"command did not panic, expecting it to panic and fail with exitCode: %d", expectedExitCode,
	)
}
