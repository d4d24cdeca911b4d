//nolint:testpackage // plain benchmark package, nothing exported here
package benchmark

import (
	"testing"

	"github.com/dzonerzy/go-clasp/clasp"
)

// Category: parser

func buildSimpleParser(b *testing.B) *clasp.Parser {
	b.Helper()
	p, err := clasp.New("bench").
		Arg(clasp.NewArg("--port", "-p").Default("8080")).
		Arg(clasp.NewArg("--verbose", "-v").Flag()).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	return p
}

func BenchmarkParseSimple(b *testing.B) {
	p := buildSimpleParser(b)
	args := []string{"--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := p.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if on, err := clasp.Get[bool](res, "--verbose"); err != nil || !on {
			b.Fatal("verbose not parsed")
		}
	}
}

func BenchmarkParseSubcommand(b *testing.B) {
	p, err := clasp.New("bench").
		Arg(clasp.NewArg("--global").Flag()).
		Command(clasp.NewCommand("serve").
			Arg(clasp.NewArg("--port").Default("8080")).
			Arg(clasp.NewArg("--host").Default("localhost"))).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"--global", "serve", "--port", "9000", "--host", "0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := p.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if got := res.Path(); len(got) != 1 || got[0] != "serve" {
			b.Fatal("command mismatch")
		}
	}
}

func BenchmarkParseInlineValues(b *testing.B) {
	p, err := clasp.New("bench").
		Arg(clasp.NewArg("--port").Default("8080")).
		Arg(clasp.NewArg("--config")).
		Arg(clasp.NewArg("--host")).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"--port=9000", "--config=/path/to/config.json", "--host=0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseBundledFlags(b *testing.B) {
	p, err := clasp.New("bench").
		Arg(clasp.NewArg("-v").Flag().Repeat()).
		Arg(clasp.NewArg("-x").Flag()).
		Arg(clasp.NewArg("-f").Flag()).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"-vvxf"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParsePassthrough(b *testing.B) {
	p, err := clasp.New("bench").
		Command(clasp.NewCommand("run").
			Passthrough().
			Arg(clasp.NewArg("argv").Repeat())).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	args := []string{"run", "python", "--", "--version", "-c", "print(1)"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseFailure(b *testing.B) {
	p := buildSimpleParser(b)
	args := []string{"--prot", "9000"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := p.ParseLenient(args); res.OK() {
			b.Fatal("expected failure")
		}
	}
}

func BenchmarkQueryScalar(b *testing.B) {
	p := buildSimpleParser(b)
	res, err := p.Parse([]string{"--port", "9000"})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if n, err := clasp.Get[int](res, "--port"); err != nil || n != 9000 {
			b.Fatal("bad port")
		}
	}
}
