//nolint:testpackage // package clasp, matching the other suites
package clasp

import (
	"bytes"
	"strings"
	"testing"
)

func TestHelpRootSections(t *testing.T) {
	p := mustParser(t, New("tool").
		Help("does tool things").
		Arg(NewArg("src").Help("input file")).
		Arg(NewArg("rest").Repeat().Help("extra inputs")).
		Arg(NewArg("--verbose", "-v").Flag().Help("talk more")).
		Command(NewCommand("build").Help("compile everything")))

	var buf bytes.Buffer
	NewHelpRenderer().Write(&buf, p, nil)
	out := buf.String()

	for _, want := range []string{
		"Usage: tool [options] <src> [rest...] <command>",
		"does tool things",
		"Arguments:",
		"input file",
		"Options:",
		"--verbose, -v",
		"talk more",
		"Commands:",
		"build",
		"compile everything",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestHelpSubcommandPath(t *testing.T) {
	p := mustParser(t, New("git").
		Command(NewCommand("remote").
			Command(NewCommand("add").
				Arg(NewArg("name")).
				Arg(NewArg("url")))))

	var buf bytes.Buffer
	NewHelpRenderer().Write(&buf, p, []string{"remote", "add"})
	out := buf.String()

	if !strings.Contains(out, "Usage: git remote add <name> <url>") {
		t.Errorf("got:\n%s", out)
	}
	if strings.Contains(out, "[options]") {
		t.Errorf("no options declared, usage must not advertise them:\n%s", out)
	}
}

func TestArgUsageBrackets(t *testing.T) {
	cases := []struct {
		builder *ArgBuilder
		want    string
	}{
		{NewArg("src"), "<src>"},
		{NewArg("src").Optional(), "[src]"},
		{NewArg("xs").Repeat(), "[xs...]"},
		{NewArg("xs").RepeatRange(1, 3), "<xs...>"},
	}
	for _, tc := range cases {
		arg, err := tc.builder.build()
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if got := argUsage(arg); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}
