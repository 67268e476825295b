package exec

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoStdout(t *testing.T) {
	const echoStr = "hello world!"

	res, err := Command("echo", "-n", echoStr).LogFn(t.Logf).Run(context.Background())
	require.NoError(t, err)

	if res.ExitCode != 0 {
		t.Fatalf("cmd exited with code %d, expected 0", res.ExitCode)
	}

	if res.StrOutput() != echoStr {
		t.Errorf("expected output '%s', got '%s'", echoStr, res.StrOutput())
	}
}

func TestCommandFails(t *testing.T) {
	res, err := Command("false").Run(context.Background())
	require.NoError(t, err)

	if res.ExitCode != 1 {
		t.Fatalf("cmd exited with code %d, expected 1", res.ExitCode)
	}

	if len(res.Output) != 0 {
		t.Fatalf("expected no output from command but got '%s'", res.StrOutput())
	}

	require.Error(t, res.ExpectSuccess())
	t.Log(res.ExpectSuccess())
}

func TestExpectSuccess(t *testing.T) {
	res, err := Command("false").ExpectSuccess().Run(context.Background())
	if err == nil {
		t.Fatal("Command did not return an error")
	}

	if res != nil {
		t.Fatalf("Command returned an error and result was not nil: %+v", res)
	}

	var ee *ExitCodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 1, ee.ExitCode)
}

func TestShellCommandCombinesStdoutAndStderr(t *testing.T) {
	var stream bytes.Buffer

	res, err := ShellCommand("echo out; echo err >&2; exit 3").
		Stream(&stream).
		LogFn(t.Logf).
		Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.StrOutput(), "out")
	assert.Contains(t, res.StrOutput(), "err")
	assert.Equal(t, res.StrOutput()+"\n", stream.String())
}

func TestShellFallbackClauseRecoversFailure(t *testing.T) {
	var stream bytes.Buffer

	res, err := ShellCommand(`exit 1 || echo "Failed!"`).
		Stream(&stream).
		ExpectSuccess().
		Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, stream.String(), "Failed!")
}

func TestDirectory(t *testing.T) {
	dir := t.TempDir()

	res, err := Command("pwd").Directory(dir).ExpectSuccess().Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dir, res.StrOutput())
	assert.Equal(t, dir, res.Dir)
}

func TestRunAbortsWhenContextIsCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := Command("sleep", "10").Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
