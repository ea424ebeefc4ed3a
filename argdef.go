// Package argdef turns a compact definition string into parsed
// argument bindings and shell completion scripts. A program describes
// its whole flag surface as one string ("-i,--id=args:dummy:2 $1"),
// binds real argv against it, and generates bash or zsh completion
// from the same tables.
package argdef

import (
	"fmt"

	"github.com/toejough/argdef/internal/bind"
	"github.com/toejough/argdef/internal/completion"
	"github.com/toejough/argdef/internal/help"
	"github.com/toejough/argdef/internal/spec"
)

// --- Re-exported types from internal packages ---

// Table is the lookup table built from one definition string.
type Table = spec.Table

// Slot is one logical destination for a bound value.
type Slot = spec.Slot

// Descriptions maps aliases to help text for usage and completion.
type Descriptions = spec.Descriptions

// Result is the outcome of one Bind call.
type Result = bind.Result

// Value is one bound value plus its provenance.
type Value = bind.Value

// Diagnostic is one warn-and-continue message produced during binding.
type Diagnostic = bind.Diagnostic

// Shell identifies a supported completion backend.
type Shell = completion.Shell

// Re-exported enum values.
const (
	Bash = completion.Bash
	Zsh  = completion.Zsh

	SourceFlag       = bind.SourceFlag
	SourceEmpty      = bind.SourceEmpty
	SourcePositional = bind.SourcePositional
	SourceDefault    = bind.SourceDefault

	LevelWarn  = bind.LevelWarn
	LevelError = bind.LevelError
)

// Version is the engine version, also the default for the built-in
// version flag when no definition is supplied.
const Version = spec.Version

// LogFunc receives tagged trace messages. The default sink discards
// them.
type LogFunc func(tag, message string)

// --- Package-level API ---

// Parse builds a definition table. It never fails; malformed groups
// degrade to best-effort slots, and an empty definition yields the
// built-in fallback table.
func Parse(definition string) *Table { return spec.Parse(definition) }

// Bind consumes argv against a table.
func Bind(argv []string, t *Table) Result { return bind.Bind(argv, t) }

// ParseShell resolves a shell name, rejecting anything outside the
// supported set.
func ParseShell(name string) (Shell, error) { return completion.ParseShell(name) }

// --- Engine ---

// Engine owns the process-wide definition table and description
// registry. SetDefinition swaps in a freshly parsed table atomically,
// so no aliases leak between definitions; descriptions persist across
// re-parses until cleared.
type Engine struct {
	table *Table
	descs *Descriptions
	log   LogFunc
}

// New returns an Engine holding the built-in fallback table.
func New() *Engine {
	return &Engine{
		table: spec.Parse(""),
		descs: spec.NewDescriptions(),
		log:   func(string, string) {},
	}
}

// SetLog installs the trace sink.
func (e *Engine) SetLog(fn LogFunc) {
	if fn == nil {
		fn = func(string, string) {}
	}

	e.log = fn
}

// SetDefinition re-parses the definition string, replacing the
// previous table entirely.
func (e *Engine) SetDefinition(definition string) {
	e.table = spec.Parse(definition)
	e.log("spec", fmt.Sprintf("definition table rebuilt with %d slots", len(e.table.Slots())))
}

// Table returns the current definition table.
func (e *Engine) Table() *Table { return e.table }

// Describe registers help text for an alias. Describing an alias the
// current table does not know is legal and simply unused.
func (e *Engine) Describe(alias, text string) { e.descs.Set(alias, text) }

// Description returns the registered help text for an alias, or "".
func (e *Engine) Description(alias string) string { return e.descs.Get(alias) }

// ClearDescriptions drops every registered description.
func (e *Engine) ClearDescriptions() { e.descs.Clear() }

// Bind consumes argv against the current table.
func (e *Engine) Bind(argv []string) Result {
	result := bind.Bind(argv, e.table)
	e.log("bind", fmt.Sprintf("bound %d values with %d diagnostics", len(result.Values), len(result.Diags)))

	return result
}

// Completion renders the completion script for the named shell.
func (e *Engine) Completion(shellName, program string) (string, error) {
	sh, err := completion.ParseShell(shellName)
	if err != nil {
		return "", err
	}

	e.log("completion", fmt.Sprintf("generating %s completion for %s", sh, program))

	return completion.Generate(sh, program, e.table, e.descs), nil
}

// Suggest returns runtime completion candidates for a command line as
// typed so far. The line includes the program name.
func (e *Engine) Suggest(line string) []string {
	return completion.Suggest(e.table, line)
}

// Usage renders usage text for the current table.
func (e *Engine) Usage(program string) string {
	return help.Render(program, e.table, e.descs)
}
