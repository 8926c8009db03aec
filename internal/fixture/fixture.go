// Package fixture reads regression fixture files and runs them against a
// compiler.
//
// A fixture file holds cases separated by "|\n\n|". Each case is an input
// and its expected output separated by " (()) ". The file is taken
// verbatim: a trailing newline belongs to the last expected output.
package fixture

import (
	"errors"
	"fmt"
	"strings"
)

// Separators of the fixture format.
const (
	CaseSeparator   = "|\n\n|"
	OutputSeparator = " (()) "
)

// ErrMalformedCase is returned for a case without an output separator.
var ErrMalformedCase = errors.New("malformed fixture case")

// Case is one input with its expected output.
type Case struct {
	Index  int // 1-based position in the file
	Input  string
	Output string
}

// Failure records a case whose actual output differs from the expected one,
// or whose compilation failed.
type Failure struct {
	Case Case
	Got  string
	Err  error
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("case %d: %v\n input: %q", f.Case.Index, f.Err, f.Case.Input)
	}
	return fmt.Sprintf("case %d:\n expected: %q\n   actual: %q\n    input: %q",
		f.Case.Index, f.Case.Output, f.Got, f.Case.Input)
}

// Parse splits data into cases.
func Parse(data string) ([]Case, error) {
	parts := strings.Split(data, CaseSeparator)
	cases := make([]Case, 0, len(parts))
	for i, part := range parts {
		input, output, ok := strings.Cut(part, OutputSeparator)
		if !ok {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedCase, i+1, part)
		}
		cases = append(cases, Case{Index: i + 1, Input: input, Output: output})
	}
	return cases, nil
}

// Run compiles every case and returns the ones that do not match. All cases
// run even after a failure.
func Run(cases []Case, compile func(string) (string, error)) []Failure {
	var failures []Failure
	for _, c := range cases {
		got, err := compile(c.Input)
		if err != nil {
			failures = append(failures, Failure{Case: c, Err: err})
			continue
		}
		if got != c.Output {
			failures = append(failures, Failure{Case: c, Got: got})
		}
	}
	return failures
}
