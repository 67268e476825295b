package log

import "testing"

type testOutput struct {
	t *testing.T
}

func (o *testOutput) Printf(format string, v ...any) {
	o.t.Helper()
	o.t.Logf(format, v...)
}

func (o *testOutput) Println(v ...any) {
	o.t.Helper()
	o.t.Log(v...)
}

func (o *testOutput) Fatalf(format string, v ...any) {
	o.t.Helper()
	o.t.Fatalf(format, v...)
}

func (o *testOutput) Fatalln(v ...any) {
	o.t.Helper()
	o.t.Fatal(v...)
}

// RedirectToTestingLog sends all output of the StdLogger to t.Log while the
// testcase runs and enables debug messages.
// The previous output and debug setting are restored on cleanup.
func RedirectToTestingLog(t *testing.T) {
	oldOut := StdLogger.GetOutput()
	oldDebugEnabled := StdLogger.DebugEnabled()

	StdLogger.SetOutput(&testOutput{t: t})
	StdLogger.EnableDebug(true)

	t.Cleanup(func() {
		StdLogger.SetOutput(oldOut)
		StdLogger.EnableDebug(oldDebugEnabled)
	})
}
