package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnmatchedOpen is matched by every *UnmatchedOpenError.
var ErrUnmatchedOpen = errors.New("unmatched opening delimiter")

// UnmatchedOpenError reports an opening delimiter whose closer never appears.
// Only comments produce it: every other delimiter is recovered as literal
// text.
type UnmatchedOpenError struct {
	Offset  int    // byte offset of the opener in the input
	Line    int    // 1-based line, 0 when not located yet
	Column  int    // 1-based column in runes, 0 when not located yet
	Opening string // opening delimiter, e.g. "[[["
	Closing string // closer that was expected
	Missing string // closers still needed at end of input, e.g. "]]]"
}

func (e *UnmatchedOpenError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unmatched %q at line %d, column %d: expected %q",
			e.Opening, e.Line, e.Column, e.Closing)
	}
	return fmt.Sprintf("unmatched %q at offset %d: expected %q", e.Opening, e.Offset, e.Closing)
}

// Is reports whether target is ErrUnmatchedOpen.
func (e *UnmatchedOpenError) Is(target error) bool {
	return target == ErrUnmatchedOpen
}

// Locate fills Line and Column from Offset. Offsets past the end of input
// leave the position untouched.
func (e *UnmatchedOpenError) Locate(input string) {
	if e.Offset < 0 || e.Offset > len(input) {
		return
	}
	before := input[:e.Offset]
	e.Line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	e.Column = utf8.RuneCountInString(before[lineStart:]) + 1
}

// shift returns a copy of e with Offset moved by delta and the position
// cleared.
func (e *UnmatchedOpenError) shift(delta int) *UnmatchedOpenError {
	return &UnmatchedOpenError{
		Offset:  e.Offset + delta,
		Opening: e.Opening,
		Closing: e.Closing,
		Missing: e.Missing,
	}
}

// Relocate returns err with the offset of an *UnmatchedOpenError moved by
// delta. It is used when a substring of the input is scanned on its own.
// Other errors are returned unchanged.
func Relocate(err error, delta int) error {
	var uoe *UnmatchedOpenError
	if !errors.As(err, &uoe) {
		return err
	}
	return uoe.shift(delta)
}
