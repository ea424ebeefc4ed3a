// Package spec parses compact argument-definition strings into the
// lookup tables the rest of the engine derives from: binding, usage
// rendering, and completion generation all read the same Table.
package spec

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Version is bound as the default for the built-in version flag when
// no definition string is supplied.
const Version = "1.3.0"

// fallbackDefinition is parsed when the definition string is empty or
// unset. The debug flag defaults to the wildcard tag.
const fallbackDefinition = "-h,--help=help -v,--version=version:%s -d,--debug=debug:*:1"

// specFieldCount is the number of colon-separated output-spec fields:
// variable, default, arity.
const specFieldCount = 3

// Slot is one logical destination for a bound value. Several aliases
// may resolve to the same slot.
type Slot struct {
	Variable   string   // name the bound value is exposed under
	Default    string   // applied only when the slot is entirely absent
	HasDefault bool     // false when Default is empty; an empty default behaves as unset
	Arity      int      // 0 = boolean flag, N = trailing tokens consumed
	Positional bool     // reachable via a $N marker
	Aliases    []string // matchable spellings in declaration order
	Labels     []string // <display> labels, never matched against argv
}

// Marker pairs a positional marker's number with its slot.
type Marker struct {
	Number int
	Slot   *Slot
}

// Table holds the alias and slot tables built from one definition
// string. A table is immutable once parsed; re-parsing builds a fresh
// one, so aliases never leak between definitions.
type Table struct {
	slots   []*Slot
	byAlias map[string]*Slot
	order   []string
}

// Parse builds a table from a definition string. It is total:
// malformed groups degrade to best-effort slots instead of errors. An
// empty or blank definition yields the built-in fallback table (help,
// version, and debug flags).
func Parse(definition string) *Table {
	if strings.TrimSpace(definition) == "" {
		definition = fmt.Sprintf(fallbackDefinition, Version)
	}

	t := &Table{byAlias: map[string]*Slot{}}

	for _, group := range strings.Fields(definition) {
		t.addGroup(group)
	}

	return t
}

// addGroup parses one whitespace-delimited group: a comma-separated
// alias list, optionally followed by "=" and a colon-separated output
// spec (variable, default, arity).
func (t *Table) addGroup(group string) {
	aliasPart := group
	specPart := ""

	if i := strings.Index(group, "="); i >= 0 {
		aliasPart, specPart = group[:i], group[i+1:]
	}

	slot := &Slot{}

	for _, alias := range strings.Split(aliasPart, ",") {
		if alias == "" {
			continue
		}

		if isLabel(alias) {
			slot.Labels = append(slot.Labels, alias)
			continue
		}

		if IsMarker(alias) {
			slot.Positional = true
		}

		slot.Aliases = append(slot.Aliases, alias)
	}

	if len(slot.Aliases) == 0 {
		return
	}

	if specPart != "" {
		fields := strings.SplitN(specPart, ":", specFieldCount)

		slot.Variable = fields[0]
		if len(fields) > 1 {
			slot.Default = fields[1]
		}

		if len(fields) > 2 {
			if n, err := strconv.Atoi(fields[2]); err == nil && n > 0 {
				slot.Arity = n
			}
		}
	}

	if slot.Variable == "" {
		slot.Variable = strings.TrimLeft(slot.Aliases[0], "-")
	}

	slot.HasDefault = slot.Default != ""

	t.slots = append(t.slots, slot)

	for _, alias := range slot.Aliases {
		if _, exists := t.byAlias[alias]; !exists {
			t.order = append(t.order, alias)
		}

		t.byAlias[alias] = slot
	}
}

// Slots returns the slots in declaration order.
func (t *Table) Slots() []*Slot { return t.slots }

// LookupFlag resolves a flag alias. Positional markers are not flags
// and never match.
func (t *Table) LookupFlag(alias string) (*Slot, bool) {
	if IsMarker(alias) {
		return nil, false
	}

	slot, ok := t.byAlias[alias]

	return slot, ok
}

// Markers returns the positional markers in numeric order ($1 before
// $2), preserving declaration order between equal numbers.
func (t *Table) Markers() []Marker {
	var out []Marker

	for _, alias := range t.order {
		if n, ok := markerNumber(alias); ok {
			out = append(out, Marker{Number: n, Slot: t.byAlias[alias]})
		}
	}

	slices.SortStableFunc(out, func(a, b Marker) int { return a.Number - b.Number })

	return out
}

// AllFlags returns every alias whose slot is not positional, in
// declaration order. Display labels are never aliases and never
// appear.
func (t *Table) AllFlags() []string {
	var out []string

	for _, alias := range t.order {
		if t.byAlias[alias].Positional {
			continue
		}

		out = append(out, alias)
	}

	return out
}

// ValueFlags returns the subset of AllFlags whose slots consume at
// least one value token.
func (t *Table) ValueFlags() []string {
	var out []string

	for _, alias := range t.order {
		slot := t.byAlias[alias]
		if slot.Positional || slot.Arity < 1 {
			continue
		}

		out = append(out, alias)
	}

	return out
}

// IsMarker reports whether alias is a numbered positional marker like
// "$2".
func IsMarker(alias string) bool {
	_, ok := markerNumber(alias)
	return ok
}

func markerNumber(alias string) (int, bool) {
	if len(alias) < 2 || alias[0] != '$' {
		return 0, false
	}

	n, err := strconv.Atoi(alias[1:])
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

func isLabel(alias string) bool {
	return strings.HasPrefix(alias, "<") && strings.HasSuffix(alias, ">")
}
