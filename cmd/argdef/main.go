// Package main provides the argdef CLI for binding shell arguments and
// generating completion scripts from a compact definition string.
package main

import (
	"errors"
	"os"

	"github.com/toejough/argdef"
)

func main() {
	err := argdef.Run(argdef.NewOsEnv())
	if err != nil {
		var exitErr argdef.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		os.Exit(1)
	}
}
