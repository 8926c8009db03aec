package main

import (
	"fmt"

	"github.com/sanity-io/litter"

	pqlite "github.com/alnah/go-pqlite"
)

// runTreeCmd prints the processed syntax tree of one source.
func runTreeCmd(args []string, env *Environment) error {
	flags, positional, err := parseTreeFlags(args, env)
	if err != nil {
		return flagError(err)
	}

	path := stdinName
	switch len(positional) {
	case 0:
	case 1:
		path = positional[0]
	default:
		return fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlag, len(positional))
	}

	src, err := readSource(path, env)
	if err != nil {
		return err
	}

	root, err := pqlite.Parse(src)
	if err != nil {
		if hint := errorHint(err, src); hint != "" {
			fmt.Fprintln(env.Stderr, hint[1:])
		}
		return err
	}

	dumper := litter.Options{
		StripPackageNames: true,
		HidePrivateFields: true,
		Compact:           flags.compact,
		Separator:         " ",
	}
	fmt.Fprintln(env.Stdout, dumper.Sdump(root))
	return nil
}
