package main

import (
	"errors"
	"fmt"
	"os"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/fixture"
)

// ErrCheckFailed is returned when a fixture case does not match.
var ErrCheckFailed = errors.New("fixture check failed")

// runCheckCmd runs fixture files against the compiler.
func runCheckCmd(args []string, env *Environment) error {
	flags, files, err := parseCheckFlags(args, env)
	if err != nil {
		return flagError(err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: check needs at least one fixture file", ErrNoInput)
	}

	var total, failed int
	for _, path := range files {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadSource, err)
		}

		cases, err := fixture.Parse(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		failures := fixture.Run(cases, pqlite.CompileUnwrapped)
		total += len(cases)
		failed += len(failures)

		if !flags.quiet {
			for _, f := range failures {
				fmt.Fprintf(env.Stderr, "%s: %s\n", path, f)
			}
		}
		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s: %d/%d passed\n", path, len(cases)-len(failures), len(cases))
		}
	}

	fmt.Fprintf(env.Stdout, "%d passed, %d failed\n", total-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d case(s)", ErrCheckFailed, failed, total)
	}
	return nil
}
