package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	pqlite "github.com/alnah/go-pqlite"
)

// stdinName is the path that selects standard input or output.
const stdinName = "-"

// utf8BOM is stripped from the start of every source.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sentinel errors for reading sources.
var (
	ErrReadSource    = errors.New("failed to read source file")
	ErrStdinTerminal = errors.New("refusing to read markup from a terminal")
)

// normalizeSource strips a leading byte order mark and checks the encoding.
func normalizeSource(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", pqlite.ErrInvalidEncoding
	}
	return string(data), nil
}

// readSourceFile reads and normalizes the markup in path.
func readSourceFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	src, err := normalizeSource(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// readStdin reads and normalizes markup piped to the process.
func readStdin(env *Environment) (string, error) {
	if env.StdinIsTerminal != nil && env.StdinIsTerminal() {
		return "", fmt.Errorf("%w: pipe input or pass a file", ErrStdinTerminal)
	}
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return "", fmt.Errorf("%w: stdin: %w", ErrReadSource, err)
	}
	return normalizeSource(data)
}

// readSource reads path, or stdin when path is "-".
func readSource(path string, env *Environment) (string, error) {
	if path == stdinName {
		return readStdin(env)
	}
	return readSourceFile(path)
}
