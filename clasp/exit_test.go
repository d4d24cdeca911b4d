//nolint:testpackage // package clasp to substitute the exit hooks
package clasp

import (
	"bytes"
	"strings"
	"testing"
)

// captureExit swaps the process hooks for buffers and restores them on
// cleanup. The recorded code stays -1 if the hook never fires.
func captureExit(t *testing.T) (code *int, stdout, stderr *bytes.Buffer) {
	t.Helper()
	c := -1
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}

	prevExit, prevOut, prevErr := osExit, exitOut, exitErr
	osExit = func(n int) { c = n }
	exitOut, exitErr = stdout, stderr
	t.Cleanup(func() {
		osExit, exitOut, exitErr = prevExit, prevOut, prevErr
	})
	return &c, stdout, stderr
}

func TestParseOrExitFailure(t *testing.T) {
	code, stdout, stderr := captureExit(t)
	p := mustParser(t, New("tool").Arg(NewArg("--port")))

	res := p.ParseOrExit([]string{"--prot"})

	if *code != 2 {
		t.Errorf("got exit code %d, want 2", *code)
	}
	if !strings.Contains(stderr.String(), "error:") || !strings.Contains(stderr.String(), "--prot") {
		t.Errorf("stderr: %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout must stay empty on failure: %q", stdout.String())
	}
	if res.OK() {
		t.Error("result must carry the failure")
	}
}

func TestParseOrExitAutoHelp(t *testing.T) {
	code, stdout, stderr := captureExit(t)
	p := mustParser(t, New("tool").
		Arg(NewArg("src")).
		AutoHelp())

	res := p.ParseOrExit([]string{"--help"})

	if *code != 0 {
		t.Errorf("got exit code %d, want 0", *code)
	}
	if !strings.Contains(stdout.String(), "Usage: tool") {
		t.Errorf("stdout: %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr must stay empty for help: %q", stderr.String())
	}
	if stopped, _ := res.Stopped(); !stopped {
		t.Error("help must stop the parse")
	}
}

func TestParseOrExitSuccess(t *testing.T) {
	code, stdout, stderr := captureExit(t)
	p := mustParser(t, New("tool").Arg(NewArg("--port")))

	res := p.ParseOrExit([]string{"--port", "8080"})

	if *code != -1 {
		t.Errorf("exit hook fired with code %d", *code)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Error("nothing may be written on success")
	}
	port, err := Get[int](res, "--port")
	if err != nil || port != 8080 {
		t.Errorf("got %d err=%v", port, err)
	}
}

// An explicit --help stop flag is the caller's own; ParseOrExit must
// not render help for it.
func TestParseOrExitExplicitHelpFlag(t *testing.T) {
	code, stdout, _ := captureExit(t)
	p := mustParser(t, New("tool").Arg(NewArg("--help").Flag().Stop()))

	res := p.ParseOrExit([]string{"--help"})

	if *code != -1 {
		t.Errorf("exit hook fired with code %d", *code)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout: %q", stdout.String())
	}
	if stopped, alias := res.Stopped(); !stopped || alias != "--help" {
		t.Errorf("got stopped=%v alias=%q", stopped, alias)
	}
}
