package clasp

import (
	"regexp"
	"slices"
	"strings"
)

// Unbounded marks an occurrence bound with no upper limit.
const Unbounded = -1

// Arg describes one named thing the parser can collect values for: a
// positional argument, a value-taking option, or a flag. An Arg is built
// once by ArgBuilder and is immutable afterwards; the same Arg may be
// shared by many commands and many concurrent parses.
type Arg struct {
	aliases    []string // first is canonical
	positional bool
	flag       bool
	stop       bool
	minOccurs  int
	maxOccurs  int // Unbounded for no upper limit
	defaults   []string
	flagValue  string
	choices    []string
	pattern    *regexp.Regexp
	help       string
	autoHelp   bool // injected by Builder.AutoHelp
}

// Name returns the canonical alias (the first one declared).
func (a *Arg) Name() string { return a.aliases[0] }

// Aliases returns all aliases in declaration order.
func (a *Arg) Aliases() []string { return a.aliases }

// IsPositional reports whether the argument is matched by position
// rather than by a dashed alias.
func (a *Arg) IsPositional() bool { return a.positional }

// IsFlag reports whether the argument is a boolean-style flag that
// takes no inline value.
func (a *Arg) IsFlag() bool { return a.flag }

// IsStop reports whether consuming this argument halts parsing.
func (a *Arg) IsStop() bool { return a.stop }

// MinOccurs returns the minimum number of occurrences.
func (a *Arg) MinOccurs() int { return a.minOccurs }

// MaxOccurs returns the maximum number of occurrences, or Unbounded.
func (a *Arg) MaxOccurs() int { return a.maxOccurs }

// Defaults returns the default values substituted when the argument is
// never provided.
func (a *Arg) Defaults() []string { return a.defaults }

// FlagValue returns the string recorded on each flag trigger.
func (a *Arg) FlagValue() string { return a.flagValue }

// Choices returns the allow-list constraint, if any.
func (a *Arg) Choices() []string { return a.choices }

// Help returns the help text.
func (a *Arg) Help() string { return a.help }

// accepts re-applies the constraints already validated against defaults
// and the flag value at construction time.
func (a *Arg) accepts(value string) bool {
	if len(a.choices) > 0 && !slices.Contains(a.choices, value) {
		return false
	}
	if a.pattern != nil && !a.pattern.MatchString(value) {
		return false
	}
	return true
}

// ArgBuilder collects the raw knobs for one argument. Nothing is
// validated until the owning Builder's Build call, which normalizes the
// required/repeat knobs into one (MinOccurs, MaxOccurs) pair.
type ArgBuilder struct {
	aliases   []string
	help      string
	required  *bool
	repeat    bool
	repeatMin *int
	repeatMax *int
	minSet    *int
	maxSet    *int
	defaults  []string
	flag      bool
	flagValue string
	stop      bool
	choices   []string
	pattern   string
}

// NewArg starts an argument definition. Aliases beginning with a dash
// make the argument an option; aliases without make it positional.
// Mixing the two is a construction error.
func NewArg(aliases ...string) *ArgBuilder {
	return &ArgBuilder{aliases: aliases}
}

// Help sets the help text shown by the help renderer.
func (b *ArgBuilder) Help(text string) *ArgBuilder {
	b.help = text
	return b
}

// Required forces MinOccurs to at least 1.
func (b *ArgBuilder) Required() *ArgBuilder {
	t := true
	b.required = &t
	return b
}

// Optional overrides the required-by-default inference for positionals.
func (b *ArgBuilder) Optional() *ArgBuilder {
	f := false
	b.required = &f
	return b
}

// Repeat allows unbounded repetition: 0..Unbounded, or 1..Unbounded when
// the argument is required.
func (b *ArgBuilder) Repeat() *ArgBuilder {
	b.repeat = true
	return b
}

// RepeatCount requires exactly n occurrences.
func (b *ArgBuilder) RepeatCount(n int) *ArgBuilder {
	b.repeatMin = &n
	b.repeatMax = &n
	return b
}

// RepeatRange allows between min and max occurrences inclusive; pass
// Unbounded as max for no upper limit.
func (b *ArgBuilder) RepeatRange(min, max int) *ArgBuilder {
	b.repeatMin = &min
	b.repeatMax = &max
	return b
}

// MinRepeat overrides the minimum occurrence count independently.
// Mutually exclusive with Repeat/RepeatCount/RepeatRange.
func (b *ArgBuilder) MinRepeat(n int) *ArgBuilder {
	b.minSet = &n
	return b
}

// MaxRepeat overrides the maximum occurrence count independently.
// Mutually exclusive with Repeat/RepeatCount/RepeatRange.
func (b *ArgBuilder) MaxRepeat(n int) *ArgBuilder {
	b.maxSet = &n
	return b
}

// Default sets the default values substituted when the argument never
// occurs. The number of defaults must satisfy the occurrence bounds.
func (b *ArgBuilder) Default(values ...string) *ArgBuilder {
	b.defaults = values
	return b
}

// Flag marks the argument as a boolean-style flag: it takes no inline
// value and records FlagValue ("true" unless overridden) per trigger.
func (b *ArgBuilder) Flag() *ArgBuilder {
	b.flag = true
	return b
}

// FlagValue sets the string recorded on each trigger and implies Flag.
func (b *ArgBuilder) FlagValue(value string) *ArgBuilder {
	b.flag = true
	b.flagValue = value
	return b
}

// Stop halts parsing as soon as this argument is consumed. Required
// checks are skipped for the whole stack in that case.
func (b *ArgBuilder) Stop() *ArgBuilder {
	b.stop = true
	return b
}

// Choices restricts accepted values to the given allow-list. Defaults
// and the flag value are checked against it at construction time.
func (b *ArgBuilder) Choices(values ...string) *ArgBuilder {
	b.choices = values
	return b
}

// Match restricts accepted values to the given regular expression.
func (b *ArgBuilder) Match(pattern string) *ArgBuilder {
	b.pattern = pattern
	return b
}

// build normalizes and validates the collected knobs into an immutable
// Arg. Every violation is a *SpecError; no partial Arg is produced.
//
//nolint:gocognit,gocyclo,cyclop // All construction rules live in one place on purpose.
func (b *ArgBuilder) build() (*Arg, error) {
	if len(b.aliases) == 0 {
		return nil, &SpecError{Subject: "argument", Msg: "argument needs at least one alias"}
	}
	name := b.aliases[0]

	seen := make(map[string]bool, len(b.aliases))
	dashed := 0
	for _, alias := range b.aliases {
		if alias == "" {
			return nil, &SpecError{Subject: name, Msg: "empty alias"}
		}
		if seen[alias] {
			return nil, &SpecError{Subject: name, Msg: "duplicate alias: " + alias}
		}
		seen[alias] = true
		if strings.HasPrefix(alias, "-") {
			dashed++
			if strings.HasPrefix(alias, "--") {
				if len(alias) < 3 {
					return nil, &SpecError{Subject: name, Msg: "long alias needs a name after the dashes: " + alias}
				}
			} else if len(alias) != 2 {
				// A short option alias is exactly a dash followed by one character.
				return nil, &SpecError{Subject: name, Msg: "short alias must be a dash and one character: " + alias}
			}
		}
	}
	if dashed != 0 && dashed != len(b.aliases) {
		return nil, &SpecError{Subject: name, Msg: "cannot mix positional and option aliases"}
	}
	positional := dashed == 0

	if b.flag && positional {
		return nil, &SpecError{Subject: name, Msg: "a flag cannot be positional"}
	}
	hasRepeatSpec := b.repeat || b.repeatMin != nil || b.minSet != nil || b.maxSet != nil
	if b.stop && hasRepeatSpec {
		return nil, &SpecError{Subject: name, Msg: "a stop argument cannot declare repetition"}
	}
	if (b.repeat || b.repeatMin != nil) && (b.minSet != nil || b.maxSet != nil) {
		return nil, &SpecError{Subject: name, Msg: "repeat and min/max repeat overrides are mutually exclusive"}
	}

	// Tentative bounds from the repeat knobs alone.
	minOccurs, maxOccurs := 0, 1
	switch {
	case b.repeat:
		minOccurs, maxOccurs = 0, Unbounded
	case b.repeatMin != nil:
		minOccurs, maxOccurs = *b.repeatMin, *b.repeatMax
	case b.minSet != nil || b.maxSet != nil:
		if b.minSet != nil {
			minOccurs = *b.minSet
		}
		switch {
		case b.maxSet != nil:
			maxOccurs = *b.maxSet
		case minOccurs > 1:
			maxOccurs = Unbounded
		default:
			maxOccurs = 1
		}
	}
	if minOccurs < 0 {
		return nil, &SpecError{Subject: name, Msg: "min_occurs cannot be negative"}
	}

	// Requiredness: explicit wins; positionals default to required unless
	// a sensible default exists, options default to not required.
	required := false
	if b.required != nil {
		required = *b.required
	} else if positional {
		sensible := len(b.defaults) > 0 || b.flag || b.stop || (hasRepeatSpec && minOccurs == 0)
		required = !sensible
	}
	if required && minOccurs < 1 {
		minOccurs = 1
	}

	if maxOccurs != Unbounded {
		if maxOccurs < 1 {
			return nil, &SpecError{Subject: name, Msg: "max_occurs must be at least 1"}
		}
		if maxOccurs < minOccurs {
			return nil, &SpecError{Subject: name, Msg: "max_occurs is below min_occurs"}
		}
		if len(b.defaults) > maxOccurs {
			return nil, &SpecError{Subject: name, Msg: "more default values than max_occurs allows"}
		}
	}
	if len(b.defaults) > 0 && len(b.defaults) < minOccurs {
		return nil, &SpecError{Subject: name, Msg: "fewer default values than min_occurs requires"}
	}

	flagValue := b.flagValue
	if b.flag && flagValue == "" {
		flagValue = "true"
	}
	if !b.flag && b.flagValue != "" {
		return nil, &SpecError{Subject: name, Msg: "flag value set on a non-flag argument"}
	}

	var pattern *regexp.Regexp
	if b.pattern != "" {
		var err error
		pattern, err = regexp.Compile(b.pattern)
		if err != nil {
			return nil, &SpecError{Subject: name, Msg: "invalid pattern: " + err.Error()}
		}
	}

	arg := &Arg{
		aliases:    append([]string(nil), b.aliases...),
		positional: positional,
		flag:       b.flag,
		stop:       b.stop,
		minOccurs:  minOccurs,
		maxOccurs:  maxOccurs,
		defaults:   append([]string(nil), b.defaults...),
		flagValue:  flagValue,
		choices:    append([]string(nil), b.choices...),
		pattern:    pattern,
		help:       b.help,
	}

	// Constraints are enforced against defaults and the flag value now so
	// per-value validation during parsing only re-applies the same check.
	for _, d := range arg.defaults {
		if !arg.accepts(d) {
			return nil, &SpecError{Subject: name, Msg: "default value violates constraints: " + d}
		}
	}
	if arg.flag && !arg.accepts(arg.flagValue) {
		return nil, &SpecError{Subject: name, Msg: "flag value violates constraints: " + arg.flagValue}
	}

	return arg, nil
}
