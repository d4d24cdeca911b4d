package clasp

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies a parsing failure. The set is closed: every
// failure the engine can produce is one of these, and callers can
// switch on the kind without inspecting message text.
type ErrorKind string

const (
	KindMissingRequired        ErrorKind = "missing_required"
	KindInvalidValue           ErrorKind = "invalid_value"
	KindTooManyOccurrences     ErrorKind = "too_many_occurrences"
	KindUnknownOption          ErrorKind = "unknown_option"
	KindUnsupportedShortOption ErrorKind = "unsupported_short_option"
	KindInvalidOptionUsage     ErrorKind = "invalid_option_usage"
	KindFlagValue              ErrorKind = "flag_value"
	KindMissingOptionValue     ErrorKind = "missing_option_value"
	KindUnexpectedPositional   ErrorKind = "unexpected_positional"
	KindMissingCommand         ErrorKind = "missing_command"
	KindMissingSubcommand      ErrorKind = "missing_subcommand"
	KindUnknownCommand         ErrorKind = "unknown_command"
)

// ParseError is the structured outcome of a failed parse. It carries
// enough context to render a precise message without re-deriving it:
// the offending alias and raw token where applicable, the command path
// and a value-copied snapshot of the level stack at failure time, the
// observed occurrence count for occurrence kinds, and a source location
// (argv index plus a character range within that token, which pinpoints
// the bad character of a bundled short option).
type ParseError struct {
	Kind   ErrorKind
	Name   string   // offending argument alias, if applicable
	Token  string   // offending raw token, if applicable
	Path   []string // command path at failure time
	Levels []*LevelSnapshot
	Count  int // observed occurrence count, for occurrence kinds

	// TokenIndex is the index into the original token list, or -1 for
	// end-of-input failures. Span is the half-open character range
	// within that token.
	TokenIndex int
	Span       [2]int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindMissingRequired:
		return "missing required argument: " + e.Name + " (got " + strconv.Itoa(e.Count) + ")"
	case KindInvalidValue:
		return "invalid value for " + e.Name + ": " + strconv.Quote(e.Token)
	case KindTooManyOccurrences:
		return "argument " + e.Name + " given too many times (" + strconv.Itoa(e.Count) + ")"
	case KindUnknownOption:
		return "unknown option: " + e.Name
	case KindUnsupportedShortOption:
		return "unsupported short option " + e.Name + " in " + strconv.Quote(e.Token)
	case KindInvalidOptionUsage:
		return "argument " + e.Name + " is positional, not an option"
	case KindFlagValue:
		return "flag " + e.Name + " does not take a value"
	case KindMissingOptionValue:
		return "option " + e.Name + " needs a value"
	case KindUnexpectedPositional:
		return "unexpected argument: " + strconv.Quote(e.Token)
	case KindMissingCommand:
		return "a command is required"
	case KindMissingSubcommand:
		return "a subcommand is required"
	case KindUnknownCommand:
		return "unknown command: " + strconv.Quote(e.Token)
	default:
		return "parse error: " + string(e.Kind)
	}
}

// SpecError reports a construction-time violation of the specification
// model. Building the offending parser fails outright; no partial or
// degraded specification is ever produced.
type SpecError struct {
	Subject string // canonical alias or command name involved
	Msg     string
}

func (e *SpecError) Error() string {
	if e.Subject == "" {
		return "invalid specification: " + e.Msg
	}
	return fmt.Sprintf("invalid specification for %s: %s", e.Subject, e.Msg)
}
