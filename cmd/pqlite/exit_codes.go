package main

import (
	"errors"
	"os"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/assets"
	"github.com/alnah/go-pqlite/internal/config"
	"github.com/alnah/go-pqlite/internal/fixture"
	"github.com/alnah/go-pqlite/internal/render"
)

// Exit codes for the pqlite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, markup or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, pqlite.ErrBrowserConnect) ||
		errors.Is(err, pqlite.ErrPageCreate) ||
		errors.Is(err, pqlite.ErrPageLoad) ||
		errors.Is(err, pqlite.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoSources) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, pqlite.ErrUnmatchedOpen) ||
		errors.Is(err, pqlite.ErrInvalidEncoding) ||
		errors.Is(err, pqlite.ErrInvalidFormat) ||
		errors.Is(err, pqlite.ErrInvalidPageSize) ||
		errors.Is(err, pqlite.ErrInvalidOrientation) ||
		errors.Is(err, pqlite.ErrInvalidMargin) ||
		errors.Is(err, pqlite.ErrShellNotFound) ||
		errors.Is(err, pqlite.ErrStyleNotFound) ||
		errors.Is(err, pqlite.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrIncompleteShell) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, render.ErrUnknownStyle) ||
		errors.Is(err, fixture.ErrMalformedCase) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrStdinTerminal) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
