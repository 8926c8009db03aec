package pqlite

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-pqlite/internal/assets"
	"github.com/alnah/go-pqlite/internal/fileutil"
	"github.com/alnah/go-pqlite/internal/parser"
	"github.com/alnah/go-pqlite/internal/pipeline"
	"github.com/alnah/go-pqlite/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TreeProcessor = (*pipeline.StandardProcessor)(nil)
	_ render.CSSInjector     = (*render.CSSInjection)(nil)
	_ assets.AssetLoader     = (*assets.AssetResolver)(nil)
)

// printStyleName is the stylesheet every PDF is rendered with.
const printStyleName = "print"

// Converter compiles pqlite markup to HTML documents and PDFs.
// Create with NewConverter, use Convert for conversion, and Close when done.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	processor    pipeline.TreeProcessor
	renderer     *render.Renderer
	cssInjector  render.CSSInjector
	shell        render.Shell
	baseCSS      string // selected style and highlight rules
	printCSS     string
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithShell, WithHighlighting).
// Returns error if an asset cannot be loaded or an option is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout, shellName: assets.DefaultShellName},
		assetLoader: assets.NewEmbeddedLoader(),
		processor:   &pipeline.StandardProcessor{},
		cssInjector: &render.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	shell, err := c.assetLoader.LoadShell(c.cfg.shellName)
	if err != nil {
		return nil, fmt.Errorf("loading shell %q: %w", c.cfg.shellName, err)
	}
	c.shell = render.Shell{Header: shell.Header, Footer: shell.Footer}

	var rendererOpts []render.Option
	var css []string

	if c.cfg.styleName != "" {
		style, err := c.resolveStyle(c.cfg.styleName)
		if err != nil {
			return nil, err
		}
		css = append(css, style)
	}

	if c.cfg.highlight {
		h, err := render.NewHighlighter(c.cfg.highlightStyle)
		if err != nil {
			return nil, err
		}
		rules, err := h.CSS()
		if err != nil {
			return nil, fmt.Errorf("generating highlight CSS: %w", err)
		}
		css = append(css, rules)
		rendererOpts = append(rendererOpts, render.WithHighlighter(h))
	}
	c.baseCSS = strings.Join(css, "\n")
	c.renderer = render.New(rendererOpts...)

	c.printCSS, err = c.assetLoader.LoadStyle(printStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", printStyleName, err)
	}

	// Tests inject their own PDF backend.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert compiles input.Source into the requested format.
// The context is checked between stages and bounds PDF rendering.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	root, err := parser.Parse(input.Source)
	if err != nil {
		return nil, locate(err, input.Source)
	}
	if err := c.processor.ProcessTree(ctx, root); err != nil {
		return nil, locate(err, input.Source)
	}

	var b strings.Builder
	if input.Format == FormatFragment {
		err = c.renderer.Fragment(&b, root)
	} else {
		err = c.renderer.Document(&b, root, c.shell)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	// Base styles first, caller CSS last so it can override them.
	css := c.baseCSS
	if input.Format == FormatPDF {
		css = joinCSS(c.printCSS, css)
	}
	css = joinCSS(css, input.CSS)

	htmlContent := c.cssInjector.InjectCSS(ctx, b.String(), css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &Result{HTML: []byte(htmlContent)}
	if input.Format != FormatPDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle turns a style name or a CSS file path into CSS content.
func (c *Converter) resolveStyle(nameOrPath string) (string, error) {
	if fileutil.IsFilePath(nameOrPath) {
		content, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", nameOrPath, err)
		}
		return string(content), nil
	}

	css, err := c.assetLoader.LoadStyle(nameOrPath)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", nameOrPath, err)
	}
	return css, nil
}

// validateInput checks the parts of input the compiler itself does not.
// Empty source is valid and compiles to an empty document.
func (c *Converter) validateInput(input Input) error {
	if !utf8.ValidString(input.Source) {
		return ErrInvalidEncoding
	}
	if _, ok := formatNames[input.Format]; !ok {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, input.Format)
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return nil
}

func joinCSS(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "\n" + b
}
