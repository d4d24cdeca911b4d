package clasp

// Result is the immutable outcome of one parse: the resolved command
// path, the level stack, the success flag, an optional structured
// error, and stop-trigger bookkeeping. Queries never mutate a Result,
// so repeated lookups against the same Result return identical values.
type Result struct {
	path      []string
	levels    []*Level
	ok        bool
	err       *ParseError
	stopped   bool
	stopAlias string
}

// OK reports whether parsing consumed the whole token list without a
// structured error.
func (r *Result) OK() bool { return r.ok }

// Err returns the structured error for a failed parse, or nil.
func (r *Result) Err() *ParseError { return r.err }

// Path returns the ordered list of matched sub-command aliases.
func (r *Result) Path() []string { return r.path }

// Depth returns the number of levels on the stack; the root is depth 0.
func (r *Result) Depth() int { return len(r.levels) }

// Level returns the frame at the given depth, or nil if the depth is
// outside [0, Depth()).
func (r *Result) Level(depth int) *Level {
	if depth < 0 || depth >= len(r.levels) {
		return nil
	}
	return r.levels[depth]
}

// Stopped reports whether a stop argument halted parsing early, and
// which alias triggered it.
func (r *Result) Stopped() (bool, string) { return r.stopped, r.stopAlias }

// stoppedByAutoHelp reports whether the stop trigger was the help flag
// injected by Builder.AutoHelp.
func (r *Result) stoppedByAutoHelp() bool {
	if !r.stopped || len(r.levels) == 0 {
		return false
	}
	lvl := r.levels[len(r.levels)-1]
	if a, _, ok := lvl.cmd.findArg(r.stopAlias); ok {
		return a.autoHelp
	}
	return false
}
