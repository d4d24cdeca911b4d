package clasp

import "strings"

// Parse walks the token list once, left to right, and returns the
// Result. On failure the returned error is the same *ParseError carried
// by the Result, with the command path and a snapshot of the level
// stack attached.
func (p *Parser) Parse(args []string) (*Result, error) {
	res := p.parse(args)
	if res.err != nil {
		return res, res.err
	}
	return res, nil
}

// ParseLenient is the non-failing variant: the partial Result is
// returned with OK() == false and the error available via Err.
func (p *Parser) ParseLenient(args []string) *Result {
	return p.parse(args)
}

// parseState is the complete mutable state of one parse: the level
// stack, the in-progress command path, and the separator/stop flags.
// One parseState exists per Parse call; the Parser itself is never
// touched, so a built Parser is safe for concurrent use.
type parseState struct {
	args           []string
	pos            int
	levels         []*Level
	path           []string
	optionsAllowed bool
	stopped        bool
	stopAlias      string
}

func (p *Parser) parse(args []string) *Result {
	st := &parseState{
		args:           args,
		levels:         []*Level{newLevel(&p.Command)},
		optionsAllowed: true,
	}

	for st.pos = 0; st.pos < len(args) && !st.stopped; st.pos++ {
		if err := st.step(args[st.pos]); err != nil {
			return st.fail(err)
		}
	}

	if !st.stopped {
		if err := st.finish(); err != nil {
			return st.fail(err)
		}
	}

	return &Result{
		path:      st.path,
		levels:    st.levels,
		ok:        true,
		stopped:   st.stopped,
		stopAlias: st.stopAlias,
	}
}

func (st *parseState) fail(e *ParseError) *Result {
	e.Path = append([]string(nil), st.path...)
	e.Levels = snapshotLevels(st.levels)
	return &Result{
		path:      st.path,
		levels:    st.levels,
		err:       e,
		stopped:   st.stopped,
		stopAlias: st.stopAlias,
	}
}

// step dispatches one token. Precedence: the "--" separator, then
// sub-command entry, then long options, then short options, then
// positionals. The separator check fires even while the level is
// locked; everything else honors the lock.
func (st *parseState) step(tok string) *ParseError {
	lvl := st.levels[len(st.levels)-1]

	if st.optionsAllowed && tok == "--" {
		st.optionsAllowed = false
		return nil
	}

	if !lvl.locked {
		if cmd, ok := lvl.cmd.findCommand(tok); ok && !lvl.outstandingRequired() {
			st.levels = append(st.levels, newLevel(cmd))
			st.path = append(st.path, tok)
			st.optionsAllowed = true
			return nil
		}
	}

	if st.optionsAllowed && !lvl.locked && len(tok) > 2 && strings.HasPrefix(tok, "--") {
		return st.longOption(lvl, tok)
	}

	if st.optionsAllowed && !lvl.locked && len(tok) > 1 && tok[0] == '-' && tok[1] != '-' {
		return st.shortOption(lvl, tok)
	}

	return st.positionalToken(lvl, tok)
}

// longOption handles --name and --name=value.
func (st *parseState) longOption(lvl *Level, tok string) *ParseError {
	name, inline := tok, ""
	hasInline := false
	if i := strings.IndexByte(tok, '='); i >= 0 {
		name, inline, hasInline = tok[:i], tok[i+1:], true
	}

	arg, ai, ok := lvl.cmd.findArg(name)
	if !ok {
		return st.optionLookupError(lvl, name, tok, [2]int{0, len(name)})
	}

	if arg.flag {
		if hasInline {
			return &ParseError{Kind: KindFlagValue, Name: name, Token: tok,
				TokenIndex: st.pos, Span: [2]int{len(name) + 1, len(tok)}}
		}
		return st.store(lvl, ai, arg.flagValue, st.pos, [2]int{0, len(tok)})
	}

	if hasInline {
		return st.store(lvl, ai, inline, st.pos, [2]int{len(name) + 1, len(tok)})
	}
	if st.pos+1 >= len(st.args) {
		return &ParseError{Kind: KindMissingOptionValue, Name: name, Token: tok,
			TokenIndex: st.pos, Span: [2]int{0, len(tok)}}
	}
	st.pos++
	value := st.args[st.pos]
	return st.store(lvl, ai, value, st.pos, [2]int{0, len(value)})
}

// shortOption handles -x, -x VALUE, -xVALUE, -x=VALUE and bundles like
// -abc. With '=', everything from and including the '=' is the value
// verbatim, so -x=3 stores "=3"; the asymmetry with --x=3 is deliberate
// and covered by tests.
//
//nolint:gocognit // All short-option shapes are dispatched in one place.
func (st *parseState) shortOption(lvl *Level, tok string) *ParseError {
	body := tok[1:]

	if i := strings.IndexByte(body, '='); i >= 0 {
		name := "-" + body[:i]
		arg, ai, ok := lvl.cmd.findArg(name)
		if !ok {
			return st.optionLookupError(lvl, name, tok, [2]int{0, i + 1})
		}
		if arg.flag {
			return &ParseError{Kind: KindFlagValue, Name: name, Token: tok,
				TokenIndex: st.pos, Span: [2]int{i + 1, len(tok)}}
		}
		return st.store(lvl, ai, body[i:], st.pos, [2]int{i + 1, len(tok)})
	}

	name := "-" + body[:1]
	arg, ai, ok := lvl.cmd.findArg(name)
	if !ok {
		return st.optionLookupError(lvl, name, tok, [2]int{0, 2})
	}

	if len(body) == 1 {
		if arg.flag {
			return st.store(lvl, ai, arg.flagValue, st.pos, [2]int{0, len(tok)})
		}
		if st.pos+1 >= len(st.args) {
			return &ParseError{Kind: KindMissingOptionValue, Name: name, Token: tok,
				TokenIndex: st.pos, Span: [2]int{0, len(tok)}}
		}
		st.pos++
		value := st.args[st.pos]
		return st.store(lvl, ai, value, st.pos, [2]int{0, len(value)})
	}

	if !arg.flag {
		// Remainder of the token is the value: -ofile.txt
		return st.store(lvl, ai, body[1:], st.pos, [2]int{2, len(tok)})
	}

	// Bundled flags: -abc triggers -a, -b, -c in order. Every character
	// after the first must itself resolve to a known flag.
	if err := st.store(lvl, ai, arg.flagValue, st.pos, [2]int{1, 2}); err != nil {
		return err
	}
	for ci := 1; ci < len(body) && !st.stopped; ci++ {
		bundled := "-" + string(body[ci])
		next, ni, known := lvl.cmd.findArg(bundled)
		if !known || !next.flag {
			return &ParseError{Kind: KindUnsupportedShortOption, Name: bundled, Token: tok,
				TokenIndex: st.pos, Span: [2]int{ci + 1, ci + 2}}
		}
		if err := st.store(lvl, ni, next.flagValue, st.pos, [2]int{ci + 1, ci + 2}); err != nil {
			return err
		}
	}
	return nil
}

// optionLookupError distinguishes a positional alias misused with
// option syntax from a genuinely unknown option.
func (st *parseState) optionLookupError(lvl *Level, name, tok string, span [2]int) *ParseError {
	stripped := strings.TrimLeft(name, "-")
	if arg, _, ok := lvl.cmd.findArg(stripped); ok && arg.positional {
		return &ParseError{Kind: KindInvalidOptionUsage, Name: stripped, Token: tok,
			TokenIndex: st.pos, Span: span}
	}
	return &ParseError{Kind: KindUnknownOption, Name: name, Token: tok,
		TokenIndex: st.pos, Span: span}
}

// positionalToken stores a token into the next positional slot, or, in
// a locked level, into the argument that first locked it.
func (st *parseState) positionalToken(lvl *Level, tok string) *ParseError {
	if lvl.locked {
		return st.store(lvl, lvl.lockedArg, tok, st.pos, [2]int{0, len(tok)})
	}

	for lvl.cursor < len(lvl.cmd.positional) {
		ai := lvl.cmd.positional[lvl.cursor]
		a := lvl.cmd.args[ai]
		if a.maxOccurs == Unbounded || lvl.counts[ai] < a.maxOccurs {
			return st.store(lvl, ai, tok, st.pos, [2]int{0, len(tok)})
		}
		lvl.cursor++
	}

	// No positional slot remains. If the node has nested commands and
	// nothing required is outstanding, the token was presumably meant to
	// be one of them.
	if len(lvl.cmd.commands) > 0 && !lvl.outstandingRequired() {
		return &ParseError{Kind: KindUnknownCommand, Token: tok,
			TokenIndex: st.pos, Span: [2]int{0, len(tok)}}
	}
	return &ParseError{Kind: KindUnexpectedPositional, Token: tok,
		TokenIndex: st.pos, Span: [2]int{0, len(tok)}}
}

// store validates and records one value for the argument at index ai of
// the given level. A single-valued argument is overwritten in place
// (last occurrence wins, counter unchanged); a bounded repeatable one
// overflows with the attempted count. Stop arguments terminate the
// parse right after the store; a passthrough command locks its level on
// the first positional value.
func (st *parseState) store(lvl *Level, ai int, value string, tokIdx int, span [2]int) *ParseError {
	a := lvl.cmd.args[ai]

	if !a.accepts(value) {
		return &ParseError{Kind: KindInvalidValue, Name: a.Name(), Token: value,
			TokenIndex: tokIdx, Span: span}
	}

	switch {
	case a.maxOccurs == 1 && lvl.counts[ai] > 0:
		lvl.values[ai][0] = value
	case a.maxOccurs != Unbounded && lvl.counts[ai] >= a.maxOccurs:
		return &ParseError{Kind: KindTooManyOccurrences, Name: a.Name(), Token: value,
			Count: lvl.counts[ai] + 1, TokenIndex: tokIdx, Span: span}
	default:
		lvl.values[ai] = append(lvl.values[ai], value)
		lvl.counts[ai]++
	}

	if a.positional && lvl.cmd.passthrough && !lvl.locked {
		lvl.locked = true
		lvl.lockedArg = ai
	}
	if a.stop {
		st.stopped = true
		st.stopAlias = a.Name()
	}
	return nil
}

// finish runs the end-of-input checks: unmet minimums on every level
// (defaults satisfy a minimum only while nothing was provided), then an
// un-entered command tree on the deepest node.
func (st *parseState) finish() *ParseError {
	for _, lvl := range st.levels {
		for ai, a := range lvl.cmd.args {
			n := lvl.counts[ai]
			effective := n
			if n == 0 {
				effective = len(a.defaults)
			}
			if effective < a.minOccurs {
				return &ParseError{Kind: KindMissingRequired, Name: a.Name(),
					Count: n, TokenIndex: -1}
			}
		}
	}

	deepest := st.levels[len(st.levels)-1]
	if len(deepest.cmd.commands) > 0 {
		kind := KindMissingSubcommand
		if len(st.levels) == 1 {
			kind = KindMissingCommand
		}
		return &ParseError{Kind: kind, TokenIndex: -1}
	}
	return nil
}
