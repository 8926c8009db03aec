package pqlite

import (
	"fmt"
	"strings"
	"time"
)

// Format selects what Convert produces.
type Format int

// Output formats.
const (
	// FormatDocument wraps the HTML in the document shell.
	FormatDocument Format = iota
	// FormatFragment produces the bare HTML of the document.
	FormatFragment
	// FormatPDF renders the wrapped document to PDF.
	FormatPDF
)

var formatNames = map[Format]string{
	FormatDocument: "document",
	FormatFragment: "fragment",
	FormatPDF:      "pdf",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a format name ("fragment", "document", "pdf") to its
// Format. Matching is case-insensitive; the empty name is FormatDocument.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatDocument, nil
	}
	for f, n := range formatNames {
		if strings.EqualFold(name, n) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	Source string        // pqlite markup (may be empty)
	Format Format        // output format (default FormatDocument)
	CSS    string        // extra CSS injected into the document (optional)
	Page   *PageSettings // PDF page settings (optional, nil = defaults)
}

// Result holds the output of a conversion. PDF is nil unless the input asked
// for FormatPDF.
type Result struct {
	HTML []byte
	PDF  []byte
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	shellName      string
	assetPath      string
	highlight      bool
	highlightStyle string
	styleName      string
}

// defaultTimeout bounds PDF rendering when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pqlite: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithShell selects the document shell by name. The default shell is
// "default".
func WithShell(name string) Option {
	return func(c *Converter) {
		c.cfg.shellName = name
	}
}

// WithAssetPath loads shells and styles from dir, falling back to the
// embedded assets for names dir does not provide.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithHighlighting enables syntax highlighting of code blocks with the named
// chroma style. The empty name selects the default style.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithStyle injects the named stylesheet ("print", "dark" or one from the
// asset path) into every document.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.styleName = name
	}
}
