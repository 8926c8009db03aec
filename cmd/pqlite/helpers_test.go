package main

// Notes:
// - Shared test infrastructure: environments with captured output, temp
//   source files, and mock converters and pools for batch tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	pqlite "github.com/alnah/go-pqlite"
)

// ---------------------------------------------------------------------------
// Environments
// ---------------------------------------------------------------------------

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment reading stdin from input.
func newTestEnv(input string) *testEnv {
	var stdout, stderr bytes.Buffer
	return &testEnv{
		Environment: &Environment{
			Now:             time.Now,
			Stdin:           strings.NewReader(input),
			Stdout:          &stdout,
			Stderr:          &stderr,
			StdinIsTerminal: func() bool { return false },
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

// writeFile creates dir/rel with content and returns its path.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	p := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", p, err)
	}
	return p
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// mockConverter compiles sources with the real compiler, or fails with err.
type mockConverter struct {
	err   error
	calls int
	mu    sync.Mutex
}

func (m *mockConverter) Convert(_ context.Context, input pqlite.Input) (*pqlite.Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if input.Format == pqlite.FormatPDF {
		return &pqlite.Result{PDF: []byte("%PDF-1.4 mock")}, nil
	}
	html, err := pqlite.CompileUnwrapped(input.Source)
	if err != nil {
		return nil, err
	}
	return &pqlite.Result{HTML: []byte(html)}, nil
}

// mockPool hands out one shared converter.
type mockPool struct {
	conv       *mockConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
}

func newMockPool(size int) *mockPool {
	return &mockPool{conv: &mockConverter{}, size: size}
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

var errMock = errors.New("mock failure")
