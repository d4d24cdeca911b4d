package clasp

import (
	"io"
	"os"
)

// Exit codes for the print-and-exit reporting mode, after sysexits
// conventions: every parse failure is a usage error.
const (
	exitOK      = 0
	exitMisuse  = 2
	exitGeneral = 1
)

// Hooks for tests; production code never touches these.
var (
	osExit             = os.Exit
	exitOut  io.Writer = os.Stdout
	exitErr  io.Writer = os.Stderr
	exitDiag           = NewRenderer().Color(true)
	exitHelp           = NewHelpRenderer().Color(true)
)

// ParseOrExit is the print-and-exit reporting mode: on failure it
// renders the diagnostic to stderr and terminates the process with a
// usage-error status; when the auto-help flag fires it renders help to
// stdout and exits 0. On success it returns the Result.
func (p *Parser) ParseOrExit(args []string) *Result {
	res := p.parse(args)

	if res.stoppedByAutoHelp() {
		exitHelp.Write(exitOut, p, res.path)
		osExit(exitOK)
		return res
	}
	if res.err != nil {
		exitDiag.Write(exitErr, p, res.err)
		osExit(exitCodeFor(res.err))
		return res
	}
	return res
}

func exitCodeFor(e *ParseError) int {
	switch e.Kind {
	case KindMissingRequired, KindInvalidValue, KindTooManyOccurrences,
		KindUnknownOption, KindUnsupportedShortOption, KindInvalidOptionUsage,
		KindFlagValue, KindMissingOptionValue, KindUnexpectedPositional,
		KindMissingCommand, KindMissingSubcommand, KindUnknownCommand:
		return exitMisuse
	default:
		return exitGeneral
	}
}
