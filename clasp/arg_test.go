//nolint:testpackage // package clasp to reach unexported build internals
package clasp

import (
	"errors"
	"testing"
)

// TestOccurrenceNormalization checks that required/repeat knobs
// collapse into the expected (MinOccurs, MaxOccurs) pair.
func TestOccurrenceNormalization(t *testing.T) {
	cases := []struct {
		name     string
		builder  *ArgBuilder
		min, max int
	}{
		{"plain positional is required", NewArg("name"), 1, 1},
		{"positional with default is optional", NewArg("name").Default("x"), 0, 1},
		{"plain option is optional", NewArg("--count"), 0, 1},
		{"required option", NewArg("--count").Required(), 1, 1},
		{"repeat shorthand", NewArg("--tag").Repeat(), 0, Unbounded},
		{"repeat shorthand required", NewArg("--tag").Repeat().Required(), 1, Unbounded},
		{"repeat count on positional", NewArg("pair").RepeatCount(2), 2, 2},
		{"repeat range", NewArg("xs").RepeatRange(1, 3), 1, 3},
		{"repeat range unbounded", NewArg("xs").RepeatRange(0, Unbounded), 0, Unbounded},
		{"min override", NewArg("--x").MinRepeat(2), 2, Unbounded},
		{"max override", NewArg("--x").MaxRepeat(3), 0, 3},
		{"zero-min repeat keeps positional optional", NewArg("rest").Repeat(), 0, Unbounded},
		{"stop flag", NewArg("--version").Flag().Stop(), 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			arg, err := tc.builder.build()
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if arg.minOccurs != tc.min || arg.maxOccurs != tc.max {
				t.Errorf("got (%d, %d), want (%d, %d)", arg.minOccurs, arg.maxOccurs, tc.min, tc.max)
			}
		})
	}
}

// TestConstructionFailures checks that every invalid knob combination
// fails outright with a SpecError.
func TestConstructionFailures(t *testing.T) {
	cases := []struct {
		name    string
		builder *ArgBuilder
	}{
		{"no aliases", NewArg()},
		{"empty alias", NewArg("")},
		{"duplicate alias", NewArg("-v", "-v")},
		{"mixed positional and option aliases", NewArg("file", "-f")},
		{"short alias too long", NewArg("-ab")},
		{"bare double dash alias", NewArg("--")},
		{"positional flag", NewArg("verbose").Flag()},
		{"stop with repetition", NewArg("--help").Flag().Stop().Repeat()},
		{"repeat and override together", NewArg("--x").Repeat().MinRepeat(1)},
		{"max below min", NewArg("xs").RepeatRange(3, 2)},
		{"zero max", NewArg("xs").RepeatRange(0, 0)},
		{"negative min", NewArg("xs").RepeatRange(-1, 2)},
		{"too many defaults", NewArg("--x").Default("a", "b")},
		{"too few defaults", NewArg("pair").RepeatCount(2).Default("a")},
		{"default outside choices", NewArg("--level").Choices("info", "warn").Default("bad")},
		{"default fails pattern", NewArg("--id").Match(`^\d+$`).Default("abc")},
		{"flag value outside choices", NewArg("--on").Choices("yes", "no").FlagValue("true")},
		{"broken pattern", NewArg("--id").Match(`([`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.builder.build()
			if err == nil {
				t.Fatal("expected construction to fail")
			}
			var se *SpecError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SpecError, got %T: %v", err, err)
			}
		})
	}
}

func TestFlagValueImpliesFlag(t *testing.T) {
	arg, err := NewArg("--mode").FlagValue("fast").build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !arg.flag || arg.flagValue != "fast" {
		t.Errorf("expected flag with value %q, got flag=%v value=%q", "fast", arg.flag, arg.flagValue)
	}

	plain, err := NewArg("--verbose").Flag().build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if plain.flagValue != "true" {
		t.Errorf("default flag value should be %q, got %q", "true", plain.flagValue)
	}
}

func TestDuplicateAliasAcrossArguments(t *testing.T) {
	_, err := New("tool").
		Arg(NewArg("--count", "-c")).
		Arg(NewArg("--cost", "-c")).
		Build()
	var se *SpecError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SpecError for duplicate alias, got %v", err)
	}
}

func TestDuplicateCommandAlias(t *testing.T) {
	_, err := New("tool").
		Command(NewCommand("run", "r")).
		Command(NewCommand("render", "r")).
		Build()
	var se *SpecError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SpecError for duplicate command alias, got %v", err)
	}
}

func TestCommandAliasCannotStartWithDash(t *testing.T) {
	_, err := New("tool").Command(NewCommand("-run")).Build()
	if err == nil {
		t.Fatal("expected construction to fail")
	}
}

// TestMerge reuses a built parser's arguments and commands as a
// sub-tree of another.
func TestMerge(t *testing.T) {
	common, err := New("common").
		Arg(NewArg("--log-level").Choices("debug", "info").Default("info")).
		Command(NewCommand("status")).
		Build()
	if err != nil {
		t.Fatalf("build common: %v", err)
	}

	p, err := New("tool").
		Arg(NewArg("--name")).
		Merge(common).
		Build()
	if err != nil {
		t.Fatalf("build merged: %v", err)
	}

	if _, _, ok := p.findArg("--log-level"); !ok {
		t.Error("merged argument not reachable")
	}
	if _, ok := p.findCommand("status"); !ok {
		t.Error("merged command not reachable")
	}
}

func TestMergeCollisionFails(t *testing.T) {
	common, err := New("common").Arg(NewArg("--name")).Build()
	if err != nil {
		t.Fatalf("build common: %v", err)
	}
	_, err = New("tool").Arg(NewArg("--name")).Merge(common).Build()
	if err == nil {
		t.Fatal("expected alias collision to fail construction")
	}
}

func TestAutoHelpInjection(t *testing.T) {
	p, err := New("tool").
		Command(NewCommand("run").Arg(NewArg("script"))).
		AutoHelp().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, node := range []*Command{&p.Command, p.commands[0]} {
		arg, _, ok := node.findArg("--help")
		if !ok {
			t.Fatalf("no --help on %q", node.Name())
		}
		if !arg.flag || !arg.stop || !arg.autoHelp {
			t.Errorf("injected help arg misconfigured on %q", node.Name())
		}
	}
}

func TestAutoHelpSkipsExplicitHelp(t *testing.T) {
	p, err := New("tool").
		Arg(NewArg("--help").Flag()).
		AutoHelp().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	arg, _, _ := p.findArg("--help")
	if arg.autoHelp {
		t.Error("explicit --help must not be replaced by the injected one")
	}
	if _, _, ok := p.findArg("-h"); ok {
		t.Error("-h must not be injected next to an explicit --help")
	}
}
