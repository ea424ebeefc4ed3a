// Package bind consumes argv sequences against a parsed definition
// table, producing named values plus accumulated diagnostics. Binding
// never aborts: anything wrong with the input surfaces as a warning or
// error in the result, and the rest of argv is still processed.
package bind

import (
	"fmt"
	"strings"

	"github.com/toejough/argdef/internal/spec"
)

// Source records how a value came to be bound.
type Source int

// Source values.
const (
	SourceFlag Source = iota
	SourceEmpty
	SourcePositional
	SourceDefault
)

// Value is one bound value plus its provenance. SourceEmpty keeps an
// explicit --flag= distinguishable from an applied default.
type Value struct {
	Str    string
	Source Source
}

func (v Value) String() string { return v.Str }

// Level classifies a diagnostic.
type Level int

// Diagnostic levels.
const (
	LevelWarn Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}

	return "warning"
}

// Diagnostic is one warn-and-continue message produced during binding.
type Diagnostic struct {
	Level   Level
	Message string
}

// Result is the outcome of one Bind call. Order lists variable names
// in first-bound order so callers can emit deterministic output.
type Result struct {
	Values map[string]Value
	Order  []string
	Diags  []Diagnostic
}

// Warnings returns the warn-level diagnostic messages in order.
func (r Result) Warnings() []string {
	return r.messages(LevelWarn)
}

// Errors returns the error-level diagnostic messages in order.
func (r Result) Errors() []string {
	return r.messages(LevelError)
}

func (r Result) messages(level Level) []string {
	var out []string

	for _, d := range r.Diags {
		if d.Level == level {
			out = append(out, d.Message)
		}
	}

	return out
}

func (r *Result) set(variable string, v Value) {
	if _, exists := r.Values[variable]; !exists {
		r.Order = append(r.Order, variable)
	}

	r.Values[variable] = v
}

func (r *Result) warnf(format string, args ...any) {
	r.Diags = append(r.Diags, Diagnostic{Level: LevelWarn, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) errorf(format string, args ...any) {
	r.Diags = append(r.Diags, Diagnostic{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}

// pooled is a bare token awaiting positional binding, tagged with its
// 1-based encounter order.
type pooled struct {
	token string
	index int
}

// Bind scans argv left to right against the table. Matched flags bind
// their slots ("1" for arity 0, the next N tokens joined with spaces
// otherwise). A --name= with an empty value binds the explicit-empty
// sentinel rather than any default. Bare tokens matching no alias pool
// up for positional markers; whatever the markers leave over is
// warned about. Slots never touched fall back to their defaults.
// Binding is stateless: the same argv and table always produce the
// same result.
func Bind(argv []string, t *spec.Table) Result {
	res := Result{Values: map[string]Value{}}
	bound := map[*spec.Slot]bool{}

	var pool []pooled

	for i := 0; i < len(argv); i++ {
		token := argv[i]

		if slot, ok := lookupFlag(t, token); ok {
			i += bindFlag(&res, bound, slot, token, argv[i+1:])
			continue
		}

		if name, value, ok := splitAssignment(token); ok {
			if slot, found := lookupFlag(t, name); found {
				bindAssignment(&res, bound, slot, value)
				continue
			}

			res.warnf("ignoring unrecognized flag: %s (%s)", name, value)

			continue
		}

		if isFlagLike(token) {
			res.warnf("ignoring unrecognized flag: %s", token)
			continue
		}

		pool = append(pool, pooled{token: token, index: len(pool) + 1})
	}

	pool = bindPositionals(&res, bound, t, pool)

	for _, p := range pool {
		res.warnf("ignoring unrecognized argument: %s [$%d]", p.token, p.index)
	}

	for _, slot := range t.Slots() {
		if !bound[slot] && slot.HasDefault {
			res.set(slot.Variable, Value{Str: slot.Default, Source: SourceDefault})
		}
	}

	return res
}

// lookupFlag resolves token against the table, retrying with leading
// dashes stripped so a definition may spell an alias without them.
func lookupFlag(t *spec.Table, token string) (*spec.Slot, bool) {
	if slot, ok := t.LookupFlag(token); ok {
		return slot, true
	}

	if isFlagLike(token) {
		return t.LookupFlag(strings.TrimLeft(token, "-"))
	}

	return nil, false
}

// bindFlag binds a matched flag token and returns how many following
// tokens it consumed. Consumption is definition-driven: the next N
// tokens are taken even if they look like flags.
func bindFlag(res *Result, bound map[*spec.Slot]bool, slot *spec.Slot, token string, rest []string) int {
	bound[slot] = true

	if slot.Arity == 0 {
		res.set(slot.Variable, Value{Str: "1", Source: SourceFlag})
		return 0
	}

	n := slot.Arity
	if len(rest) < n {
		res.errorf("flag %s expects %d argument(s) but only %d remain", token, n, len(rest))
		n = len(rest)
	}

	res.set(slot.Variable, Value{Str: strings.Join(rest[:n], " "), Source: SourceFlag})

	return n
}

func bindAssignment(res *Result, bound map[*spec.Slot]bool, slot *spec.Slot, value string) {
	bound[slot] = true

	if value == "" {
		// Present-but-empty is not absent: the default must not apply.
		res.set(slot.Variable, Value{Source: SourceEmpty})
		return
	}

	res.set(slot.Variable, Value{Str: value, Source: SourceFlag})
}

// bindPositionals fills positional slots from the pool in marker order
// and returns the leftover pool. Each unbound slot consumes exactly
// one token, whatever its declared arity; arity above one on a marker
// draws a policy warning but still binds a single token.
func bindPositionals(res *Result, bound map[*spec.Slot]bool, t *spec.Table, pool []pooled) []pooled {
	for _, m := range t.Markers() {
		if bound[m.Slot] {
			continue
		}

		if m.Slot.Arity > 1 {
			res.warnf("indexed variable %s should not be used for multiple arguments", m.Slot.Variable)
		}

		if len(pool) == 0 {
			continue
		}

		res.set(m.Slot.Variable, Value{Str: pool[0].token, Source: SourcePositional})
		bound[m.Slot] = true
		pool = pool[1:]
	}

	return pool
}

func splitAssignment(token string) (name, value string, ok bool) {
	if !isFlagLike(token) {
		return "", "", false
	}

	i := strings.Index(token, "=")
	if i < 0 {
		return "", "", false
	}

	return token[:i], token[i+1:], true
}

func isFlagLike(token string) bool {
	return len(token) > 1 && token[0] == '-'
}
