package clasp

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// HelpRenderer produces a usage/help block for one resolved command
// node. ParseOrExit runs it when the auto-help flag fires; it is also
// usable standalone for a host program's own help plumbing.
type HelpRenderer struct {
	colorize bool
}

// NewHelpRenderer creates a renderer with color disabled.
func NewHelpRenderer() *HelpRenderer { return &HelpRenderer{} }

// Color enables colored section headings.
func (h *HelpRenderer) Color(enabled bool) *HelpRenderer {
	h.colorize = enabled
	return h
}

// Write renders help for the command at the given path (empty path for
// the root).
func (h *HelpRenderer) Write(w io.Writer, p *Parser, path []string) {
	node := nodeAt(p, path)

	fmt.Fprintln(w, h.usageLine(p, node, path))
	if node.help != "" {
		fmt.Fprintf(w, "\n%s\n", node.help)
	}

	var positionals, options []*Arg
	for _, a := range node.args {
		if a.positional {
			positionals = append(positionals, a)
		} else {
			options = append(options, a)
		}
	}

	if len(positionals) > 0 {
		fmt.Fprintf(w, "\n%s\n", h.heading("Arguments:"))
		for _, a := range positionals {
			fmt.Fprintf(w, "  %-22s %s\n", argUsage(a), a.help)
		}
	}
	if len(options) > 0 {
		fmt.Fprintf(w, "\n%s\n", h.heading("Options:"))
		for _, a := range options {
			fmt.Fprintf(w, "  %-22s %s\n", strings.Join(a.aliases, ", "), a.help)
		}
	}
	if len(node.commands) > 0 {
		fmt.Fprintf(w, "\n%s\n", h.heading("Commands:"))
		for _, c := range node.commands {
			fmt.Fprintf(w, "  %-22s %s\n", strings.Join(c.aliases, ", "), c.help)
		}
	}
}

func (h *HelpRenderer) heading(s string) string {
	if h.colorize {
		return color.New(color.Bold).Sprint(s)
	}
	return s
}

func (h *HelpRenderer) usageLine(p *Parser, node *Command, path []string) string {
	parts := []string{"Usage:", p.name}
	parts = append(parts, path...)

	hasOptions := false
	for _, a := range node.args {
		if !a.positional {
			hasOptions = true
			break
		}
	}
	if hasOptions {
		parts = append(parts, "[options]")
	}
	for _, ai := range node.positional {
		parts = append(parts, argUsage(node.args[ai]))
	}
	if len(node.commands) > 0 {
		parts = append(parts, "<command>")
	}
	return strings.Join(parts, " ")
}

// argUsage renders one positional for the usage line: <name> when
// required, [name] when optional, with ... for repeatables.
func argUsage(a *Arg) string {
	name := a.Name()
	if a.maxOccurs == Unbounded || a.maxOccurs > 1 {
		name += "..."
	}
	if a.minOccurs > 0 {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}
