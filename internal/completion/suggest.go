package completion

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toejough/argdef/internal/spec"
)

// Suggest returns completion candidates for a command line as typed so
// far. The line includes the program name. Flag aliases are suggested
// by prefix; when the word being completed is the value of a flag that
// consumes arguments, filesystem candidates are offered instead.
func Suggest(t *spec.Table, line string) []string {
	words, fresh := tokenize(line)
	if len(words) == 0 {
		return nil
	}

	// Drop the program name.
	words = words[1:]

	prefix := ""
	if !fresh && len(words) > 0 {
		prefix = words[len(words)-1]
		words = words[:len(words)-1]
	}

	if len(words) > 0 {
		if slot, ok := t.LookupFlag(words[len(words)-1]); ok && slot.Arity > 0 {
			return fileCandidates(prefix)
		}
	}

	var out []string

	for _, flag := range t.AllFlags() {
		if strings.HasPrefix(flag, prefix) {
			out = append(out, flag)
		}
	}

	return out
}

// fileCandidates expands prefix* against the filesystem for value
// arguments.
func fileCandidates(prefix string) []string {
	pattern := prefix + "*"
	if !doublestar.ValidatePattern(pattern) {
		return nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil
	}

	return matches
}

// tokenize splits a command line into words, honoring quotes and
// backslash escapes. The second return reports whether the line ends
// ready for a fresh word (trailing unquoted whitespace).
func tokenize(line string) ([]string, bool) {
	var (
		words   []string
		current strings.Builder
		quote   byte // active quote char, 0 when none
		escaped bool
		fresh   bool
		inWord  bool
	)

	flush := func() {
		if inWord {
			words = append(words, current.String())
			current.Reset()

			inWord = false
		}
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case escaped:
			current.WriteByte(ch)

			inWord = true
			escaped = false
			fresh = false
		case ch == '\\' && quote != '\'':
			escaped = true
			inWord = true
			fresh = false
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				current.WriteByte(ch)
			}

			inWord = true
			fresh = false
		case ch == '\'' || ch == '"':
			quote = ch
			inWord = true
			fresh = false
		case ch == ' ' || ch == '\t':
			flush()

			fresh = true
		default:
			current.WriteByte(ch)

			inWord = true
			fresh = false
		}
	}

	// An open quote or dangling escape means the word is still being
	// typed.
	if quote != 0 || escaped {
		fresh = false
	}

	flush()

	return words, fresh
}
