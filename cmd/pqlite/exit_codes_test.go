package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every package the CLI calls,
//   plus wrapped errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/config"
	"github.com/alnah/go-pqlite/internal/fixture"
	"github.com/alnah/go-pqlite/internal/render"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	_, unmatched := pqlite.CompileUnwrapped("[[[")

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", pqlite.ErrBrowserConnect, ExitBrowser},
		{"page create", pqlite.ErrPageCreate, ExitBrowser},
		{"page load", pqlite.ErrPageLoad, ExitBrowser},
		{"pdf generation", pqlite.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", pqlite.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read source", ErrReadSource, ExitIO},
		{"read css", ErrReadCSS, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no sources", ErrNoSources, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"unclosed comment", unmatched, ExitUsage},
		{"invalid encoding", pqlite.ErrInvalidEncoding, ExitUsage},
		{"invalid format", pqlite.ErrInvalidFormat, ExitUsage},
		{"invalid page size", pqlite.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", pqlite.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", pqlite.ErrInvalidMargin, ExitUsage},
		{"shell not found", pqlite.ErrShellNotFound, ExitUsage},
		{"style not found", pqlite.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", pqlite.ErrInvalidAssetPath, ExitUsage},
		{"unknown highlight style", render.ErrUnknownStyle, ExitUsage},
		{"malformed fixture", fixture.ErrMalformedCase, ExitUsage},
		{"invalid flag", ErrInvalidFlag, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"stdin terminal", ErrStdinTerminal, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"batch keeps cause", fmt.Errorf("%w: 1 of 2 file(s): %w", ErrConversionFailed, unmatched), ExitUsage},

		// General errors (exit 1)
		{"conversion failed alone", ErrConversionFailed, ExitGeneral},
		{"check failed", ErrCheckFailed, ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
		{"unknown error", errors.New("something else"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d must be between 3 and 125", code)
		}
	}
}
