package main

// Notes:
// - converterPool: we test the adapter over a real pqlite pool. Fragment
//   conversion never starts a browser, so no Chrome is needed.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"testing"

	pqlite "github.com/alnah/go-pqlite"
)

// ---------------------------------------------------------------------------
// TestConverterPool - Adapter behavior
// ---------------------------------------------------------------------------

func TestConverterPool(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(2)
	defer pool.Close()

	if pool.Size() != 2 {
		t.Errorf("Size() = %d, want 2", pool.Size())
	}

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	res, err := conv.Convert(context.Background(), pqlite.Input{Source: "*‘x’", Format: pqlite.FormatFragment})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if string(res.HTML) != "<b>x</b>" {
		t.Errorf("Convert() = %q, want <b>x</b>", res.HTML)
	}
	pool.Release(conv)

	// The released converter is handed out again.
	again, err := pool.Acquire()
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if again != conv {
		t.Error("Acquire() after Release returned a new converter")
	}
	pool.Release(again)
}

func TestConverterPool_ReleaseForeignConverter(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1)
	defer pool.Close()

	// Converters the pool did not create are ignored.
	pool.Release(&mockConverter{})

	if _, err := pool.Acquire(); err != nil {
		t.Errorf("Acquire() error = %v", err)
	}
}

func TestConverterPool_Closed(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1)
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := pool.Acquire(); !errors.Is(err, pqlite.ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_InvalidOptions(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1, pqlite.WithShell("missing"))
	defer pool.Close()

	if _, err := pool.Acquire(); !errors.Is(err, pqlite.ErrShellNotFound) {
		t.Errorf("Acquire() error = %v, want ErrShellNotFound", err)
	}
}
