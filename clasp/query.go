package clasp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QueryErrorKind classifies a failed lookup against a Result.
type QueryErrorKind string

const (
	QueryNotFound     QueryErrorKind = "not_found"
	QueryInvalidDepth QueryErrorKind = "invalid_depth"
	QueryNotScalar    QueryErrorKind = "not_scalar"
	QueryAbsent       QueryErrorKind = "absent"
	QueryConversion   QueryErrorKind = "conversion"
)

// QueryError reports why a typed lookup failed. Conversion failures
// carry the offending literal and the requested target type.
type QueryError struct {
	Kind    QueryErrorKind
	Name    string
	Depth   int
	Literal string
	Target  string
}

func (e *QueryError) Error() string {
	switch e.Kind {
	case QueryNotFound:
		return "no argument named " + e.Name
	case QueryInvalidDepth:
		return fmt.Sprintf("depth %d out of range for %s", e.Depth, e.Name)
	case QueryNotScalar:
		return "argument " + e.Name + " can repeat; use a vector lookup"
	case QueryAbsent:
		return "argument " + e.Name + " was not provided and has no default"
	case QueryConversion:
		return fmt.Sprintf("cannot convert %q to %s for %s", e.Literal, e.Target, e.Name)
	default:
		return "query error: " + string(e.Kind)
	}
}

// Get resolves name against the level stack, innermost first, and
// converts the single stored value to T. Resolution order: the stored
// value, else the first default, else the untriggered representation
// for flags. It fails for arguments that may repeat; integer lookups on
// flags return the occurrence counter instead.
func Get[T any](r *Result, name string) (T, error) {
	lvl, ai, qe := resolve(r, name)
	if qe != nil {
		var zero T
		return zero, qe
	}
	return scalarAt[T](lvl, ai, name)
}

// GetAt is Get restricted to one level of the stack; depth 0 is the
// root.
func GetAt[T any](r *Result, name string, depth int) (T, error) {
	lvl, ai, qe := resolveAt(r, name, depth)
	if qe != nil {
		var zero T
		return zero, qe
	}
	return scalarAt[T](lvl, ai, name)
}

// Lookup is the non-failing variant of Get: a genuinely absent
// argument yields ok == false instead of an error.
func Lookup[T any](r *Result, name string) (T, bool, error) {
	lvl, ai, qe := resolve(r, name)
	if qe != nil {
		var zero T
		return zero, false, qe
	}
	v, err := scalarAt[T](lvl, ai, name)
	if err != nil {
		var qe *QueryError
		if errors.As(err, &qe) && qe.Kind == QueryAbsent {
			var zero T
			return zero, false, nil
		}
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// GetSlice returns all stored values converted to T, falling back to
// the full default list, else an empty slice (untriggered flags
// included).
func GetSlice[T any](r *Result, name string) ([]T, error) {
	lvl, ai, qe := resolve(r, name)
	if qe != nil {
		return nil, qe
	}
	return sliceAt[T](lvl, ai, name)
}

// GetSliceAt is GetSlice restricted to one level.
func GetSliceAt[T any](r *Result, name string, depth int) ([]T, error) {
	lvl, ai, qe := resolveAt(r, name, depth)
	if qe != nil {
		return nil, qe
	}
	return sliceAt[T](lvl, ai, name)
}

// Count returns the occurrence counter for name: how many times the
// argument was provided (flag triggers included). Defaults never count.
func Count(r *Result, name string) (int, error) {
	lvl, ai, qe := resolve(r, name)
	if qe != nil {
		return 0, qe
	}
	return lvl.counts[ai], nil
}

// CountAt is Count restricted to one level.
func CountAt(r *Result, name string, depth int) (int, error) {
	lvl, ai, qe := resolveAt(r, name, depth)
	if qe != nil {
		return 0, qe
	}
	return lvl.counts[ai], nil
}

func resolve(r *Result, name string) (*Level, int, *QueryError) {
	for i := len(r.levels) - 1; i >= 0; i-- {
		if ai, ok := r.levels[i].cmd.argIndex[name]; ok {
			return r.levels[i], ai, nil
		}
	}
	return nil, 0, &QueryError{Kind: QueryNotFound, Name: name}
}

func resolveAt(r *Result, name string, depth int) (*Level, int, *QueryError) {
	if depth < 0 || depth >= len(r.levels) {
		return nil, 0, &QueryError{Kind: QueryInvalidDepth, Name: name, Depth: depth}
	}
	if ai, ok := r.levels[depth].cmd.argIndex[name]; ok {
		return r.levels[depth], ai, nil
	}
	return nil, 0, &QueryError{Kind: QueryNotFound, Name: name, Depth: depth}
}

func scalarAt[T any](lvl *Level, ai int, name string) (T, error) {
	var zero T
	a := lvl.cmd.args[ai]

	// Integer lookup on a flag yields the occurrence counter rather than
	// a converted 0/1 string.
	if a.flag {
		if _, isInt := any(zero).(int); isInt {
			return any(lvl.counts[ai]).(T), nil
		}
	}
	if a.maxOccurs != 1 {
		return zero, &QueryError{Kind: QueryNotScalar, Name: name}
	}

	value, present := scalarString(lvl, ai)
	if !present {
		return zero, &QueryError{Kind: QueryAbsent, Name: name}
	}
	return convert[T](value, name)
}

// scalarString applies the default-substitution order: stored value,
// first default, then "false" for an untriggered flag.
func scalarString(lvl *Level, ai int) (string, bool) {
	if lvl.counts[ai] > 0 {
		return lvl.values[ai][0], true
	}
	a := lvl.cmd.args[ai]
	if len(a.defaults) > 0 {
		return a.defaults[0], true
	}
	if a.flag {
		return "false", true
	}
	return "", false
}

func sliceAt[T any](lvl *Level, ai int, name string) ([]T, error) {
	a := lvl.cmd.args[ai]
	values := lvl.values[ai]
	if len(values) == 0 {
		values = a.defaults
	}
	out := make([]T, len(values))
	for i, v := range values {
		converted, err := convert[T](v, name)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}

// convert turns one stored string into the requested type. Strings are
// identity; booleans recognize a fixed token set; everything else goes
// through strconv (or time.ParseDuration).
func convert[T any](s, name string) (T, error) {
	var zero T
	fail := func() (T, error) {
		return zero, &QueryError{Kind: QueryConversion, Name: name, Literal: s,
			Target: fmt.Sprintf("%T", zero)}
	}

	var out any
	switch any(zero).(type) {
	case string:
		out = s
	case bool:
		b, ok := parseBoolToken(s)
		if !ok {
			return fail()
		}
		out = b
	case int:
		n, err := strconv.Atoi(s)
		if err != nil {
			return fail()
		}
		out = n
	case int8:
		n, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return fail()
		}
		out = int8(n)
	case int16:
		n, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return fail()
		}
		out = int16(n)
	case int32:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fail()
		}
		out = int32(n)
	case int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail()
		}
		out = n
	case uint:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fail()
		}
		out = uint(n)
	case uint8:
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return fail()
		}
		out = uint8(n)
	case uint16:
		n, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return fail()
		}
		out = uint16(n)
	case uint32:
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fail()
		}
		out = uint32(n)
	case uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fail()
		}
		out = n
	case float32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return fail()
		}
		out = float32(f)
	case float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fail()
		}
		out = f
	case time.Duration:
		d, err := time.ParseDuration(s)
		if err != nil {
			return fail()
		}
		out = d
	default:
		return fail()
	}
	return out.(T), nil
}

// parseBoolToken recognizes the fixed case-insensitive token set; any
// other input is a conversion error, never a silent false.
func parseBoolToken(s string) (value, ok bool) {
	switch strings.ToLower(s) {
	case "true", "t", "1", "yes", "on":
		return true, true
	case "false", "f", "0", "no", "off":
		return false, true
	}
	return false, false
}
