package clasp

// Level is the mutable frame for one active command depth during a
// parse: per-argument value lists and occurrence counters, a cursor
// into the positional order, and the passthrough lock. Levels reference
// the shared immutable Command spec and are exclusively owned by the
// parse call that created them.
type Level struct {
	cmd       *Command
	values    [][]string
	counts    []int
	cursor    int // index into cmd.positional
	locked    bool
	lockedArg int // args index capturing passthrough tokens
}

func newLevel(cmd *Command) *Level {
	return &Level{
		cmd:       cmd,
		values:    make([][]string, len(cmd.args)),
		counts:    make([]int, len(cmd.args)),
		lockedArg: -1,
	}
}

// Command returns the command node this level was entered for.
func (l *Level) Command() *Command { return l.cmd }

// Values returns the stored values for the named argument, in order of
// occurrence. The second result is false if the level's scope does not
// declare the alias.
func (l *Level) Values(alias string) ([]string, bool) {
	i, ok := l.cmd.argIndex[alias]
	if !ok {
		return nil, false
	}
	return l.values[i], true
}

// Count returns the occurrence counter for the named argument.
func (l *Level) Count(alias string) (int, bool) {
	i, ok := l.cmd.argIndex[alias]
	if !ok {
		return 0, false
	}
	return l.counts[i], true
}

// Locked reports whether the level is in passthrough capture mode.
func (l *Level) Locked() bool { return l.locked }

// outstandingRequired reports whether any positional argument of this
// level is still below its minimum, counting defaults only while no
// value has been provided. A command transition must not be allowed to
// skip over such an argument.
func (l *Level) outstandingRequired() bool {
	for _, ai := range l.cmd.positional {
		a := l.cmd.args[ai]
		effective := l.counts[ai]
		if effective == 0 {
			effective = len(a.defaults)
		}
		if effective < a.minOccurs {
			return true
		}
	}
	return false
}

// LevelSnapshot is a value copy of one Level taken at the moment of
// failure, keyed by canonical alias so it stays inspectable after the
// parse call's working state is gone.
type LevelSnapshot struct {
	Command string
	Values  map[string][]string
	Counts  map[string]int
}

func (l *Level) snapshot() *LevelSnapshot {
	s := &LevelSnapshot{
		Command: l.cmd.Name(),
		Values:  make(map[string][]string, len(l.cmd.args)),
		Counts:  make(map[string]int, len(l.cmd.args)),
	}
	for i, a := range l.cmd.args {
		s.Values[a.Name()] = append([]string(nil), l.values[i]...)
		s.Counts[a.Name()] = l.counts[i]
	}
	return s
}

func snapshotLevels(levels []*Level) []*LevelSnapshot {
	out := make([]*LevelSnapshot, len(levels))
	for i, l := range levels {
		out[i] = l.snapshot()
	}
	return out
}
