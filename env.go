package argdef

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Env abstracts the process environment so the CLI surface can run
// against real streams in production and captured buffers in tests.
// Bound values and generated scripts go to Stdout; every diagnostic
// goes to Stderr, so Stdout only ever carries semantically meaningful
// content.
type Env interface {
	Args() []string
	Stdout() io.Writer
	Stderr() io.Writer
	Getenv(name string) string
}

// OsEnv is the production Env backed by the real process.
type OsEnv struct{}

// NewOsEnv returns the production environment.
func NewOsEnv() OsEnv { return OsEnv{} }

// Args returns os.Args.
func (OsEnv) Args() []string { return os.Args }

// Stdout returns the process stdout.
func (OsEnv) Stdout() io.Writer { return os.Stdout }

// Stderr returns the process stderr.
func (OsEnv) Stderr() io.Writer { return os.Stderr }

// Getenv reads a process environment variable.
func (OsEnv) Getenv(name string) string { return os.Getenv(name) }

// ExecuteEnv is an Env that captures both output streams for testing.
type ExecuteEnv struct {
	args   []string
	vars   map[string]string
	stdout strings.Builder
	stderr strings.Builder
}

// NewExecuteEnv returns an Env capturing output for the given argv.
// Args should include the program name as the first element.
func NewExecuteEnv(args []string) *ExecuteEnv {
	return &ExecuteEnv{args: args, vars: map[string]string{}}
}

// Setenv sets an environment variable visible to Getenv.
func (e *ExecuteEnv) Setenv(name, value string) { e.vars[name] = value }

// Args returns the configured argv.
func (e *ExecuteEnv) Args() []string { return e.args }

// Stdout returns the captured primary output stream.
func (e *ExecuteEnv) Stdout() io.Writer { return &e.stdout }

// Stderr returns the captured diagnostic stream.
func (e *ExecuteEnv) Stderr() io.Writer { return &e.stderr }

// Getenv reads a configured environment variable.
func (e *ExecuteEnv) Getenv(name string) string { return e.vars[name] }

// Output returns everything written to the primary stream.
func (e *ExecuteEnv) Output() string { return e.stdout.String() }

// ErrOutput returns everything written to the diagnostic stream.
func (e *ExecuteEnv) ErrOutput() string { return e.stderr.String() }

// ExitError is returned when the CLI should exit with a non-zero code.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExecuteResult contains the streams captured by Execute.
type ExecuteResult struct {
	Output    string // stdout: bindings or generated scripts
	ErrOutput string // stderr: warnings, errors, usage
}

// Execute runs the CLI with the given args and returns captured output
// instead of writing to the process streams. Useful for testing. Args
// should include the program name as the first element.
func Execute(args []string) (ExecuteResult, error) {
	return ExecuteWithEnv(NewExecuteEnv(args))
}

// ExecuteWithEnv runs the CLI against a prepared ExecuteEnv.
func ExecuteWithEnv(env *ExecuteEnv) (ExecuteResult, error) {
	err := Run(env)

	return ExecuteResult{Output: env.Output(), ErrOutput: env.ErrOutput()}, err
}
