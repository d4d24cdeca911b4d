package clasp

import "strings"

// Command is one node of the command tree: its own arguments, nested
// commands, and the lookup tables derived at construction time. Nodes
// are immutable once built and may be shared between trees (Merge
// references, it does not copy).
type Command struct {
	aliases     []string
	help        string
	args        []*Arg
	commands    []*Command
	passthrough bool

	argIndex   map[string]int // alias (verbatim, dashes included) -> args index
	cmdIndex   map[string]int // alias -> commands index
	positional []int          // args indices of positionals, declaration order
}

// Name returns the canonical alias, or "" for the root node.
func (c *Command) Name() string {
	if len(c.aliases) == 0 {
		return ""
	}
	return c.aliases[0]
}

// Aliases returns all aliases of the command.
func (c *Command) Aliases() []string { return c.aliases }

// Args returns the command's arguments in declaration order.
func (c *Command) Args() []*Arg { return c.args }

// Commands returns the nested commands in declaration order.
func (c *Command) Commands() []*Command { return c.commands }

// IsPassthrough reports whether the command captures every token after
// its first positional value verbatim.
func (c *Command) IsPassthrough() bool { return c.passthrough }

// Help returns the help text.
func (c *Command) Help() string { return c.help }

func (c *Command) findArg(alias string) (*Arg, int, bool) {
	if i, ok := c.argIndex[alias]; ok {
		return c.args[i], i, true
	}
	return nil, 0, false
}

func (c *Command) findCommand(alias string) (*Command, bool) {
	if i, ok := c.cmdIndex[alias]; ok {
		return c.commands[i], true
	}
	return nil, false
}

// Parser is the tree root: the same shape as a Command plus a display
// name used in diagnostics and help. Built once, read-only during
// parsing; one Parser may serve many concurrent Parse calls.
type Parser struct {
	Command
	name string
}

// Name returns the display name given to New.
func (p *Parser) Name() string { return p.name }

// CommandBuilder collects one command node before Build.
type CommandBuilder struct {
	aliases     []string
	help        string
	passthrough bool
	args        []*ArgBuilder
	commands    []*CommandBuilder
	merged      []*Parser
}

// NewCommand starts a command definition.
func NewCommand(aliases ...string) *CommandBuilder {
	return &CommandBuilder{aliases: aliases}
}

// Help sets the command help text.
func (b *CommandBuilder) Help(text string) *CommandBuilder {
	b.help = text
	return b
}

// Passthrough enables capture mode: once the command's first positional
// value is stored, every remaining token of the scope is taken verbatim
// as another value of that argument.
func (b *CommandBuilder) Passthrough() *CommandBuilder {
	b.passthrough = true
	return b
}

// Arg adds an argument to the command.
func (b *CommandBuilder) Arg(arg *ArgBuilder) *CommandBuilder {
	b.args = append(b.args, arg)
	return b
}

// Command nests a sub-command.
func (b *CommandBuilder) Command(cmd *CommandBuilder) *CommandBuilder {
	b.commands = append(b.commands, cmd)
	return b
}

// Merge reuses another built parser's arguments and commands as a
// sub-tree of this node. The merged nodes are shared, not copied; they
// are immutable so sharing is safe.
func (b *CommandBuilder) Merge(p *Parser) *CommandBuilder {
	b.merged = append(b.merged, p)
	return b
}

func (b *CommandBuilder) build(autoHelp bool) (*Command, error) {
	name := ""
	if len(b.aliases) > 0 {
		name = b.aliases[0]
	}
	for _, alias := range b.aliases {
		if alias == "" || strings.HasPrefix(alias, "-") {
			return nil, &SpecError{Subject: name, Msg: "command alias cannot be empty or start with a dash: " + alias}
		}
	}

	cmd := &Command{
		aliases:     append([]string(nil), b.aliases...),
		help:        b.help,
		passthrough: b.passthrough,
		argIndex:    make(map[string]int),
		cmdIndex:    make(map[string]int),
	}

	for _, ab := range b.args {
		arg, err := ab.build()
		if err != nil {
			return nil, err
		}
		cmd.args = append(cmd.args, arg)
	}
	for _, src := range b.merged {
		cmd.args = append(cmd.args, src.args...)
	}

	if autoHelp && !declaresHelp(cmd.args) {
		help, err := NewArg("--help", "-h").Flag().Stop().Help("show help and exit").build()
		if err != nil {
			return nil, err
		}
		help.autoHelp = true
		cmd.args = append(cmd.args, help)
	}

	for i, arg := range cmd.args {
		for _, alias := range arg.aliases {
			if _, dup := cmd.argIndex[alias]; dup {
				return nil, &SpecError{Subject: name, Msg: "duplicate argument alias: " + alias}
			}
			cmd.argIndex[alias] = i
		}
		if arg.positional {
			cmd.positional = append(cmd.positional, i)
		}
	}

	for _, cb := range b.commands {
		sub, err := cb.build(autoHelp)
		if err != nil {
			return nil, err
		}
		cmd.commands = append(cmd.commands, sub)
	}
	for _, src := range b.merged {
		cmd.commands = append(cmd.commands, src.commands...)
	}
	for i, sub := range cmd.commands {
		for _, alias := range sub.aliases {
			if _, dup := cmd.cmdIndex[alias]; dup {
				return nil, &SpecError{Subject: name, Msg: "duplicate command alias: " + alias}
			}
			cmd.cmdIndex[alias] = i
		}
	}

	return cmd, nil
}

func declaresHelp(args []*Arg) bool {
	for _, a := range args {
		for _, alias := range a.aliases {
			if alias == "--help" || alias == "-h" {
				return true
			}
		}
	}
	return false
}

// Builder assembles a Parser. All validation happens in Build; builder
// methods only collect.
type Builder struct {
	root     *CommandBuilder
	name     string
	autoHelp bool
}

// New starts a parser definition. The name is only used for display.
func New(name string) *Builder {
	return &Builder{name: name, root: NewCommand()}
}

// Help sets the root help text.
func (b *Builder) Help(text string) *Builder {
	b.root.Help(text)
	return b
}

// Arg adds a root-level argument.
func (b *Builder) Arg(arg *ArgBuilder) *Builder {
	b.root.Arg(arg)
	return b
}

// Command adds a top-level command.
func (b *Builder) Command(cmd *CommandBuilder) *Builder {
	b.root.Command(cmd)
	return b
}

// Merge reuses another parser's arguments and commands at the root.
func (b *Builder) Merge(p *Parser) *Builder {
	b.root.Merge(p)
	return b
}

// Passthrough enables capture mode at the root scope.
func (b *Builder) Passthrough() *Builder {
	b.root.Passthrough()
	return b
}

// AutoHelp injects a --help/-h stop flag into the root and every
// descendant command that does not already declare one of those
// aliases. ParseOrExit renders help and exits 0 when it fires.
func (b *Builder) AutoHelp() *Builder {
	b.autoHelp = true
	return b
}

// Build normalizes and validates the whole tree. Any violation fails
// construction with a *SpecError; no partial parser is produced.
func (b *Builder) Build() (*Parser, error) {
	root, err := b.root.build(b.autoHelp)
	if err != nil {
		return nil, err
	}
	return &Parser{Command: *root, name: b.name}, nil
}
