package clasp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/dzonerzy/go-clasp/internal/fuzzy"
)

// Renderer turns a ParseError into a single-line human-readable
// message. Everything it says is derived from the error's structured
// fields plus the parser's specification model; it never re-parses.
type Renderer struct {
	suggest     bool
	maxDistance int
	colorize    bool
}

// NewRenderer creates a renderer with suggestions enabled and color
// disabled.
func NewRenderer() *Renderer {
	return &Renderer{suggest: true, maxDistance: 2}
}

// Suggestions enables or disables fuzzy did-you-mean hints.
func (r *Renderer) Suggestions(enabled bool) *Renderer {
	r.suggest = enabled
	return r
}

// MaxDistance sets the edit-distance cutoff for suggestions.
func (r *Renderer) MaxDistance(d int) *Renderer {
	r.maxDistance = d
	return r
}

// Color enables a colored prefix in Write output.
func (r *Renderer) Color(enabled bool) *Renderer {
	r.colorize = enabled
	return r
}

// Write renders the message to w with an "error:" prefix, colored when
// enabled.
func (r *Renderer) Write(w io.Writer, p *Parser, e *ParseError) {
	prefix := "error:"
	if r.colorize {
		prefix = color.New(color.FgRed, color.Bold).Sprint("error:")
	}
	fmt.Fprintf(w, "%s %s\n", prefix, r.Render(p, e))
}

// Render builds the single-line message.
//
//nolint:gocyclo,cyclop // One branch per error kind.
func (r *Renderer) Render(p *Parser, e *ParseError) string {
	node := nodeAt(p, e.Path)
	var msg string

	switch e.Kind {
	case KindMissingRequired:
		msg = "missing required argument " + e.Name
		if arg := specArg(node, e.Name); arg != nil {
			msg += fmt.Sprintf(": needs at least %d, got %d", arg.minOccurs, e.Count)
		}
	case KindInvalidValue:
		msg = fmt.Sprintf("invalid value %q for %s", e.Token, e.Name)
		if arg := specArg(node, e.Name); arg != nil {
			if len(arg.choices) > 0 {
				msg += " (choose from: " + strings.Join(arg.choices, ", ") + ")"
			} else if arg.pattern != nil {
				msg += " (must match " + arg.pattern.String() + ")"
			}
		}
	case KindTooManyOccurrences:
		msg = fmt.Sprintf("argument %s given %d times", e.Name, e.Count)
		if arg := specArg(node, e.Name); arg != nil && arg.maxOccurs != Unbounded {
			msg += ", at most " + strconv.Itoa(arg.maxOccurs) + " allowed"
		}
	case KindUnknownOption:
		msg = "unknown option " + e.Name
		msg += r.suggestion(e.Name, optionAliases(node))
	case KindUnsupportedShortOption:
		msg = fmt.Sprintf("%s in %q is not a flag and cannot be bundled", e.Name, e.Token)
	case KindInvalidOptionUsage:
		msg = e.Name + " is a positional argument, not an option"
	case KindFlagValue:
		msg = "flag " + e.Name + " does not take a value"
	case KindMissingOptionValue:
		msg = "option " + e.Name + " needs a value"
	case KindUnexpectedPositional:
		msg = fmt.Sprintf("unexpected argument %q", e.Token)
	case KindMissingCommand:
		msg = "a command is required" + commandList(node)
	case KindMissingSubcommand:
		msg = "a subcommand is required" + commandList(node)
	case KindUnknownCommand:
		msg = fmt.Sprintf("unknown command %q", e.Token)
		msg += r.suggestion(e.Token, commandAliases(node))
	default:
		msg = e.Error()
	}

	if e.TokenIndex >= 0 {
		if e.Span[1]-e.Span[0] < len(e.Token) {
			msg += fmt.Sprintf(" (argv[%d], chars %d-%d)", e.TokenIndex, e.Span[0], e.Span[1])
		} else {
			msg += fmt.Sprintf(" (argv[%d])", e.TokenIndex)
		}
	}
	return msg
}

func (r *Renderer) suggestion(input string, candidates []string) string {
	if !r.suggest {
		return ""
	}
	if best := fuzzy.Closest(input, candidates, r.maxDistance); best != "" {
		return fmt.Sprintf(" (did you mean %q?)", best)
	}
	return ""
}

// nodeAt walks the command path from the root; a nil result only
// happens for paths the parser itself never produced.
func nodeAt(p *Parser, path []string) *Command {
	node := &p.Command
	for _, alias := range path {
		next, ok := node.findCommand(alias)
		if !ok {
			return node
		}
		node = next
	}
	return node
}

func specArg(node *Command, alias string) *Arg {
	if node == nil || alias == "" {
		return nil
	}
	if arg, _, ok := node.findArg(alias); ok {
		return arg
	}
	return nil
}

func optionAliases(node *Command) []string {
	if node == nil {
		return nil
	}
	var out []string
	for _, a := range node.args {
		if !a.positional {
			out = append(out, a.aliases...)
		}
	}
	return out
}

func commandAliases(node *Command) []string {
	if node == nil {
		return nil
	}
	var out []string
	for _, c := range node.commands {
		out = append(out, c.aliases...)
	}
	return out
}

func commandList(node *Command) string {
	names := make([]string, 0, len(node.commands))
	for _, c := range node.commands {
		names = append(names, c.Name())
	}
	if len(names) == 0 {
		return ""
	}
	return " (one of: " + strings.Join(names, ", ") + ")"
}
