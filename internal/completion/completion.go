// Package completion projects a parsed definition table into shell
// completion scripts, one backend per supported shell, and serves
// runtime completion requests for partially typed command lines.
package completion

import (
	"fmt"
	"strings"

	"github.com/toejough/argdef/internal/spec"
)

// Shell identifies a supported completion backend.
type Shell int

// The closed set of supported shells.
const (
	Bash Shell = iota
	Zsh
)

// ParseShell resolves a shell name. Anything outside the supported set
// is rejected here, before dispatch, so callers fail loudly instead of
// getting a best-effort guess.
func ParseShell(name string) (Shell, error) {
	switch name {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	}

	return 0, fmt.Errorf("unsupported shell type: %s", name)
}

// String returns the shell's conventional name.
func (s Shell) String() string {
	switch s {
	case Bash:
		return "bash"
	case Zsh:
		return "zsh"
	}

	return fmt.Sprintf("Shell(%d)", int(s))
}

// generator renders one shell's completion-registration script.
type generator interface {
	generate(program string, t *spec.Table, d *spec.Descriptions) string
}

// generators holds one backend per Shell variant.
//
//nolint:gochecknoglobals // Read-only dispatch table.
var generators = map[Shell]generator{
	Bash: bashGenerator{},
	Zsh:  zshGenerator{},
}

// Generate renders the completion script for a shell. The table may be
// empty of flags; the output is still a complete, sourceable script.
// Values outside the Shell enum were rejected by ParseShell and render
// nothing.
func Generate(shell Shell, program string, t *spec.Table, d *spec.Descriptions) string {
	g, ok := generators[shell]
	if !ok {
		return ""
	}

	return g.generate(program, t, d)
}

// Sanitize derives a shell-safe function identifier from a program
// name: every rune outside [A-Za-z0-9_] becomes an underscore.
func Sanitize(program string) string {
	var b strings.Builder

	for _, r := range program {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}

type bashGenerator struct{}

// _bashScript expects: program name, sanitized function base, flag
// words, value-flag words.
const _bashScript = `# bash completion for %[1]s
_%[2]s_complete() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    local flags="%[3]s"
    local value_flags=(%[4]s)

    local vf
    for vf in "${value_flags[@]}"; do
        if [[ "$prev" == "$vf" ]]; then
            COMPREPLY=( $(compgen -f -- "$cur") )
            return
        fi
    done

    COMPREPLY=( $(compgen -W "$flags" -- "$cur") )
}
complete -F _%[2]s_complete %[1]s
`

func (bashGenerator) generate(program string, t *spec.Table, _ *spec.Descriptions) string {
	return fmt.Sprintf(_bashScript,
		program,
		Sanitize(program),
		strings.Join(t.AllFlags(), " "),
		strings.Join(t.ValueFlags(), " "),
	)
}

type zshGenerator struct{}

// _zshScript expects: program name, _arguments body.
const _zshScript = `#compdef %[1]s

_%[1]s() {
%[2]s
}

_%[1]s "$@"
`

func (zshGenerator) generate(program string, t *spec.Table, d *spec.Descriptions) string {
	valued := map[string]bool{}
	for _, alias := range t.ValueFlags() {
		valued[alias] = true
	}

	// No trailing backslash after the last spec line, so an empty
	// table still yields a valid function body.
	body := "    _arguments -s -S"

	for _, alias := range t.AllFlags() {
		line := alias + "[" + escapeDescription(d.Get(alias)) + "]"
		if valued[alias] {
			line += ":value:_files"
		}

		body += " \\\n        '" + line + "'"
	}

	return fmt.Sprintf(_zshScript, program, body)
}

// escapeDescription keeps registry text from breaking out of the
// single-quoted _arguments spec.
func escapeDescription(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")

	return strings.ReplaceAll(text, "'", `'\''`)
}
