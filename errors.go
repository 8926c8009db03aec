package pqlite

import (
	"errors"

	"github.com/alnah/go-pqlite/internal/assets"
	"github.com/alnah/go-pqlite/internal/parser"
)

// UnmatchedOpenError reports a comment opener "[[[" that is never closed.
// It matches ErrUnmatchedOpen with errors.Is.
type UnmatchedOpenError = parser.UnmatchedOpenError

// Sentinel errors for library operations.
var (
	ErrUnmatchedOpen   = parser.ErrUnmatchedOpen
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrShellNotFound    = assets.ErrShellNotFound
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
