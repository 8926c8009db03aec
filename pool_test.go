package pqlite

// Notes:
// - Pools under test build converters with a mocked PDF backend, so no
//   browser is started.
// - Acquire after Close returns ErrPoolClosed instead of blocking.

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func newTestPool(n int, opts ...Option) *ConverterPool {
	pool := NewConverterPool(n, opts...)
	pool.newFunc = func(opts ...Option) (*Converter, error) {
		return NewConverter(append([]Option{withPDFConverter(&mockPDFConverter{})}, opts...)...)
	}
	return pool
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Worker Count Resolution
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit=1 for sequential", 1, 1},
		{"large explicit value kept", 64, 64},
		{"zero uses auto calculation", 0, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
		{"negative uses auto calculation", -3, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverterPool - Acquire, Release and Close
// ---------------------------------------------------------------------------

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := newTestPool(2)
	defer pool.Close()

	c1, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	c2, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c1 == c2 {
		t.Error("expected different converter instances")
	}

	pool.Release(c1)
	c3, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c3 != c1 {
		t.Error("expected to get back the released converter")
	}

	pool.Release(c2)
	pool.Release(c3)
}

func TestConverterPool_Size(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct{ size, want int }{{3, 3}, {1, 1}, {0, 1}, {-2, 1}} {
		if got := NewConverterPool(tt.size).Size(); got != tt.want {
			t.Errorf("NewConverterPool(%d).Size() = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestConverterPool_LazyCreation(t *testing.T) {
	t.Parallel()

	pool := newTestPool(4)
	defer pool.Close()

	if pool.created != 0 {
		t.Fatalf("created = %d before any Acquire, want 0", pool.created)
	}
	c, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	pool.Release(c)
	if pool.created != 1 {
		t.Errorf("created = %d, want 1", pool.created)
	}
}

func TestConverterPool_OptionsApplied(t *testing.T) {
	t.Parallel()

	pool := newTestPool(1, WithStyle("dark"))
	defer pool.Close()

	c, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer pool.Release(c)

	if c.cfg.styleName != "dark" {
		t.Errorf("styleName = %q, want dark", c.cfg.styleName)
	}
}

func TestConverterPool_CreationError(t *testing.T) {
	t.Parallel()

	pool := newTestPool(1, WithShell("missing"))
	defer pool.Close()

	if _, err := pool.Acquire(); !errors.Is(err, ErrShellNotFound) {
		t.Fatalf("Acquire() error = %v, want ErrShellNotFound", err)
	}
	// The failed slot is free again.
	if pool.created != 0 {
		t.Errorf("created = %d after failure, want 0", pool.created)
	}
}

func TestConverterPool_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	pool := newTestPool(4)
	defer pool.Close()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := pool.Acquire()
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			time.Sleep(5 * time.Millisecond)
			pool.Release(c)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(5 * time.Second)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		t.Fatal("concurrent access test timed out - possible deadlock")
	}

	if pool.created > pool.Size() {
		t.Errorf("created = %d converters, capacity %d", pool.created, pool.Size())
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool := newTestPool(2)

	c, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	mock := c.pdfConverter.(*mockPDFConverter)

	if err := pool.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("Close() did not close the converter")
	}

	// Release and Close after close are no-ops.
	pool.Release(c)
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}
