package argdef

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI surface against env: bind mode by default, plus
// the "completion" and "__complete" commands. The definition string
// comes from --spec (or the ARGDEF environment variable); with no
// definition and no argv, usage goes to the diagnostic stream and Run
// returns a non-zero ExitError.
func Run(env Env) error {
	args := env.Args()
	if len(args) == 0 {
		fmt.Fprintln(env.Stderr(), "error: empty argv")
		return ExitError{Code: 1}
	}

	program := args[0]

	opts, rest, err := extractRunFlags(args[1:])
	if err != nil {
		fmt.Fprintf(env.Stderr(), "error: %v\n", err)
		return ExitError{Code: 2}
	}

	eng := New()
	if tags := env.Getenv("ARGDEF_DEBUG"); tags != "" {
		eng.SetLog(stderrLog(env, tags))
	}

	definition := opts.definition
	if definition == "" {
		definition = env.Getenv("ARGDEF")
	}

	eng.SetDefinition(definition)

	for _, d := range opts.describes {
		eng.Describe(d.alias, d.text)
	}

	if len(rest) > 0 {
		switch rest[0] {
		case "completion":
			return runCompletion(env, eng, rest[1:])
		case "__complete":
			return runSuggest(env, eng, rest[1:])
		}
	}

	if definition == "" && len(rest) == 0 {
		fmt.Fprint(env.Stderr(), eng.Usage(program))
		return ExitError{Code: 2}
	}

	return runBind(env, eng, rest)
}

// unexported variables.
var (
	errDescribeRequiresValue = errors.New("--describe requires alias=text")
	errSpecRequiresValue     = errors.New("--spec requires a definition string")
)

const completionUsage = "Usage: completion <bash|zsh> <program> [output-path]"

type describeEntry struct {
	alias string
	text  string
}

type runFlags struct {
	definition string
	describes  []describeEntry
}

// extractRunFlags pulls --spec and --describe out of args; everything
// else (and everything after "--") passes through untouched.
func extractRunFlags(args []string) (runFlags, []string, error) {
	var (
		opts runFlags
		rest []string
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			rest = append(rest, args[i+1:]...)
			return opts, rest, nil
		case arg == "--spec":
			if i+1 >= len(args) {
				return opts, nil, errSpecRequiresValue
			}

			opts.definition = args[i+1]
			i++
		case strings.HasPrefix(arg, "--spec="):
			opts.definition = strings.TrimPrefix(arg, "--spec=")
		case arg == "--describe":
			if i+1 >= len(args) {
				return opts, nil, errDescribeRequiresValue
			}

			entry, err := parseDescribe(args[i+1])
			if err != nil {
				return opts, nil, err
			}

			opts.describes = append(opts.describes, entry)
			i++
		case strings.HasPrefix(arg, "--describe="):
			entry, err := parseDescribe(strings.TrimPrefix(arg, "--describe="))
			if err != nil {
				return opts, nil, err
			}

			opts.describes = append(opts.describes, entry)
		default:
			rest = append(rest, arg)
		}
	}

	return opts, rest, nil
}

func parseDescribe(s string) (describeEntry, error) {
	i := strings.Index(s, "=")
	if i <= 0 {
		return describeEntry{}, fmt.Errorf("invalid describe entry %q: want alias=text", s)
	}

	return describeEntry{alias: s[:i], text: s[i+1:]}, nil
}

// runBind binds argv and prints eval-able assignment lines. Values go
// to stdout; every diagnostic goes to stderr.
func runBind(env Env, eng *Engine, argv []string) error {
	result := eng.Bind(argv)

	for _, diag := range result.Diags {
		fmt.Fprintf(env.Stderr(), "%s: %s\n", diag.Level, diag.Message)
	}

	for _, name := range result.Order {
		fmt.Fprintf(env.Stdout(), "%s=%s\n", name, shellQuote(result.Values[name].Str))
	}

	return nil
}

// shellQuote single-quotes a value for eval-able output.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func runCompletion(env Env, eng *Engine, args []string) error {
	if len(args) == 1 {
		// Shell omitted: fall back to $SHELL detection.
		if shell := detectShell(env); shell != "" {
			args = []string{shell, args[0]}
		}
	}

	if len(args) < 2 {
		fmt.Fprintln(env.Stderr(), completionUsage)
		return ExitError{Code: 2}
	}

	script, err := eng.Completion(args[0], args[1])
	if err != nil {
		fmt.Fprintf(env.Stderr(), "error: %v\n", err)
		return ExitError{Code: 1}
	}

	if len(args) > 2 {
		if err := os.WriteFile(args[2], []byte(script), 0o644); err != nil {
			fmt.Fprintf(env.Stderr(), "error: %v\n", err)
			return ExitError{Code: 1}
		}

		return nil
	}

	fmt.Fprint(env.Stdout(), script)

	return nil
}

func runSuggest(env Env, eng *Engine, args []string) error {
	if len(args) == 0 {
		return nil
	}

	for _, candidate := range eng.Suggest(args[0]) {
		fmt.Fprintln(env.Stdout(), candidate)
	}

	return nil
}

// detectShell returns the supported shell named by $SHELL, or "".
func detectShell(env Env) string {
	shell := strings.TrimSpace(env.Getenv("SHELL"))
	if shell == "" {
		return ""
	}

	if i := strings.LastIndexAny(shell, `/\`); i >= 0 {
		shell = shell[i+1:]
	}

	switch shell {
	case "bash", "zsh":
		return shell
	}

	return ""
}

// stderrLog returns the trace sink enabled by ARGDEF_DEBUG. A tag set
// of "*" enables every tag; otherwise tags is a comma-separated list.
func stderrLog(env Env, tags string) LogFunc {
	return func(tag, message string) {
		if tags != "*" && !strings.Contains(","+tags+",", ","+tag+",") {
			return
		}

		fmt.Fprintf(env.Stderr(), "# [%s] %s\n", tag, message)
	}
}
