package pqlite

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-pqlite/internal/assets"
	"github.com/alnah/go-pqlite/internal/ast"
	"github.com/alnah/go-pqlite/internal/parser"
	"github.com/alnah/go-pqlite/internal/pipeline"
	"github.com/alnah/go-pqlite/internal/render"
)

// CompileUnwrapped compiles input to a bare HTML fragment.
//
// Every input compiles except one with an unclosed comment, which returns an
// *UnmatchedOpenError. Input that is not valid UTF-8 returns
// ErrInvalidEncoding.
func CompileUnwrapped(input string) (string, error) {
	root, err := Parse(input)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(input) + len(input)/4)
	if err := render.Fragment(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// CompileWrapped compiles input and writes a complete HTML document (the
// default shell around the fragment) to w.
//
// Nothing is written when compilation fails. Write errors are returned
// wrapped; use errors.Is to match the writer's own errors.
func CompileWrapped(input string, w io.Writer) error {
	root, err := Parse(input)
	if err != nil {
		return err
	}

	if err := render.Document(w, root, defaultShell()); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// Parse parses input and runs every rewrite pass over the tree. The result
// is the tree the renderer sees: no TooltipText remains, shorthands and
// spoilers are resolved and bracketed targets are turned into links and
// tooltips.
func Parse(input string) (*ast.Root, error) {
	if !utf8.ValidString(input) {
		return nil, ErrInvalidEncoding
	}

	root, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}

	if err := pipeline.Process(root); err != nil {
		return nil, locate(err, input)
	}
	return root, nil
}

// locate fills in the line and column of an unmatched-comment error raised
// after parsing, when only the byte offset is known.
func locate(err error, input string) error {
	var unmatched *UnmatchedOpenError
	if errors.As(err, &unmatched) && unmatched.Line == 0 {
		unmatched.Locate(input)
	}
	return err
}

func defaultShell() render.Shell {
	s := assets.DefaultShell()
	return render.Shell{Header: s.Header, Footer: s.Footer}
}
