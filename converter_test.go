package pqlite

// Notes:
// - Tests Converter.Convert with a mocked PDF backend so no browser starts
// - Internal test options (withPDFConverter, etc.) inject the mocks
// - goquery checks where CSS lands in rendered documents

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-pqlite/internal/assets"
	"github.com/alnah/go-pqlite/internal/ast"
	"github.com/alnah/go-pqlite/internal/pipeline"
	"github.com/alnah/go-pqlite/internal/render"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	called    bool
	closed    bool
	inputHTML string
	inputOpts *pdfOptions
	output    []byte
	err       error
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.called = true
	m.inputHTML = htmlContent
	m.inputOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

type mockCSSInjector struct {
	called   bool
	inputCSS string
}

func (m *mockCSSInjector) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	m.called = true
	m.inputCSS = cssContent
	return htmlContent
}

type panickingProcessor struct{}

func (panickingProcessor) ProcessTree(ctx context.Context, root *ast.Root) error {
	panic("boom")
}

// ---------------------------------------------------------------------------
// Test Options
// ---------------------------------------------------------------------------

func withPDFConverter(c pdfConverter) Option {
	return func(conv *Converter) {
		conv.pdfConverter = c
	}
}

func withCSSInjector(i render.CSSInjector) Option {
	return func(conv *Converter) {
		conv.cssInjector = i
	}
}

func withProcessor(p pipeline.TreeProcessor) Option {
	return func(conv *Converter) {
		conv.processor = p
	}
}

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *mockPDFConverter) {
	t.Helper()

	mock := &mockPDFConverter{}
	conv, err := NewConverter(append([]Option{withPDFConverter(mock)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv, mock
}

// ---------------------------------------------------------------------------
// TestNewConverter - Construction
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		conv, _ := newTestConverter(t)
		if conv.cfg.timeout != defaultTimeout {
			t.Errorf("timeout = %v, want %v", conv.cfg.timeout, defaultTimeout)
		}
		if conv.shell.Header != assets.DefaultShell().Header {
			t.Error("default converter does not use the default shell")
		}
		if conv.baseCSS != "" {
			t.Errorf("baseCSS = %q, want empty", conv.baseCSS)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		conv, _ := newTestConverter(t, WithTimeout(time.Minute))
		if conv.cfg.timeout != time.Minute {
			t.Errorf("timeout = %v, want %v", conv.cfg.timeout, time.Minute)
		}
	})

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"unknown shell", []Option{WithShell("fancy")}, ErrShellNotFound},
		{"unknown style", []Option{WithStyle("neon")}, ErrStyleNotFound},
		{"missing style file", []Option{WithStyle("./missing/style.css")}, os.ErrNotExist},
		{"invalid asset path", []Option{WithAssetPath("/does/not/exist")}, ErrInvalidAssetPath},
		{"unknown highlight style", []Option{WithHighlighting("no-such-style")}, render.ErrUnknownStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{withPDFConverter(&mockPDFConverter{})}, tt.opts...)
			_, err := NewConverter(opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewConverter_AssetPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	shellDir := filepath.Join(dir, "shells", "plain")
	if err := os.MkdirAll(shellDir, 0o755); err != nil {
		t.Fatalf("creating shell dir: %v", err)
	}
	for name, content := range map[string]string{"header.html": "<main>", "footer.html": "</main>"} {
		if err := os.WriteFile(filepath.Join(shellDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	conv, _ := newTestConverter(t, WithAssetPath(dir), WithShell("plain"))

	res, err := conv.Convert(context.Background(), Input{Source: "x"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got := string(res.HTML); got != "<main>x</main>" {
		t.Errorf("HTML = %q, want %q", got, "<main>x</main>")
	}
}

func TestNewConverter_StyleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.css")
	if err := os.WriteFile(path, []byte("abbr { color: teal; }"), 0o644); err != nil {
		t.Fatalf("writing style: %v", err)
	}

	conv, _ := newTestConverter(t, WithStyle(path))
	if conv.baseCSS != "abbr { color: teal; }" {
		t.Errorf("baseCSS = %q", conv.baseCSS)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Output Formats
// ---------------------------------------------------------------------------

func TestConvert_Document(t *testing.T) {
	t.Parallel()

	conv, mock := newTestConverter(t)

	res, err := conv.Convert(context.Background(), Input{Source: "*‘x’"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	var want bytes.Buffer
	if err := CompileWrapped("*‘x’", &want); err != nil {
		t.Fatalf("CompileWrapped() error = %v", err)
	}
	if !bytes.Equal(res.HTML, want.Bytes()) {
		t.Errorf("HTML = %q, want the CompileWrapped output", res.HTML)
	}
	if res.PDF != nil || mock.called {
		t.Error("PDF generated for FormatDocument")
	}
}

func TestConvert_Fragment(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	res, err := conv.Convert(context.Background(), Input{Source: "*‘x’", Format: FormatFragment})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got := string(res.HTML); got != "<b>x</b>" {
		t.Errorf("HTML = %q, want %q", got, "<b>x</b>")
	}
}

func TestConvert_FragmentWithCSS(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	res, err := conv.Convert(context.Background(), Input{Source: "x", Format: FormatFragment, CSS: "b{}"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got := string(res.HTML); got != "<style>b{}</style>x" {
		t.Errorf("HTML = %q", got)
	}
}

func TestConvert_PDF(t *testing.T) {
	t.Parallel()

	conv, mock := newTestConverter(t)
	page := &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1}

	res, err := conv.Convert(context.Background(), Input{Source: "x", Format: FormatPDF, Page: page})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !mock.called {
		t.Fatal("PDF converter not called")
	}
	if string(res.PDF) != "%PDF-1.4 mock" {
		t.Errorf("PDF = %q", res.PDF)
	}
	if mock.inputOpts == nil || mock.inputOpts.Page != page {
		t.Errorf("page settings not passed through: %+v", mock.inputOpts)
	}
	if mock.inputHTML != string(res.HTML) {
		t.Error("PDF rendered from different HTML than returned")
	}

	printCSS, err := assets.LoadStyle(printStyleName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if !strings.Contains(mock.inputHTML, printCSS) {
		t.Error("PDF input lacks the print style")
	}
}

func TestConvert_PDFError(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{err: ErrBrowserConnect}
	conv, err := NewConverter(withPDFConverter(mock))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	_, err = conv.Convert(context.Background(), Input{Source: "x", Format: FormatPDF})
	if !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("Convert() error = %v, want ErrBrowserConnect", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_CSSOrder - Style Layering
// ---------------------------------------------------------------------------

func TestConvert_CSSOrder(t *testing.T) {
	t.Parallel()

	injector := &mockCSSInjector{}
	conv, _ := newTestConverter(t, withCSSInjector(injector), WithStyle("dark"), WithHighlighting(""))

	_, err := conv.Convert(context.Background(), Input{Source: "x", Format: FormatPDF, CSS: "/* user */"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	css := injector.inputCSS
	dark, _ := assets.LoadStyle("dark")
	printCSS, _ := assets.LoadStyle(printStyleName)

	iPrint := strings.Index(css, printCSS)
	iDark := strings.Index(css, dark)
	iChroma := strings.Index(css, ".chroma")
	iUser := strings.Index(css, "/* user */")
	if iPrint < 0 || iDark < 0 || iChroma < 0 || iUser < 0 {
		t.Fatalf("missing CSS part (print %d, dark %d, chroma %d, user %d)", iPrint, iDark, iChroma, iUser)
	}
	if !(iPrint < iDark && iDark < iChroma && iChroma < iUser) {
		t.Errorf("CSS order = print %d, dark %d, chroma %d, user %d; want ascending", iPrint, iDark, iChroma, iUser)
	}
}

func TestConvert_CSSInHead(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	res, err := conv.Convert(context.Background(), Input{Source: "x", CSS: "abbr { color: red; }"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.HTML))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	last := doc.Find("head style").Last()
	if got := last.Text(); got != "abbr { color: red; }" {
		t.Errorf("last head style = %q, want the user CSS", got)
	}
}

func TestConvert_Highlighting(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, WithHighlighting("monokai"))

	res, err := conv.Convert(context.Background(), Input{Source: "``func main() {}``"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.HTML))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if doc.Find("#main pre.chroma").Length() != 1 {
		t.Error("code block not highlighted")
	}
	if !strings.Contains(doc.Find("head").Text(), ".chroma") {
		t.Error("highlight stylesheet not injected")
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Errors - Validation and Failures
// ---------------------------------------------------------------------------

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	conv, mock := newTestConverter(t)

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"unclosed comment", Input{Source: "[[[x"}, ErrUnmatchedOpen},
		{"invalid encoding", Input{Source: "\xfe"}, ErrInvalidEncoding},
		{"invalid format", Input{Source: "x", Format: Format(9)}, ErrInvalidFormat},
		{"invalid page", Input{Source: "x", Format: FormatPDF, Page: &PageSettings{Size: "a0"}}, ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := conv.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if mock.called {
		t.Error("PDF converter called for invalid input")
	}
}

func TestConvert_ErrorPosition(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	_, err := conv.Convert(context.Background(), Input{Source: "a\nb[[[c"})
	var uoe *UnmatchedOpenError
	if !errors.As(err, &uoe) {
		t.Fatalf("Convert() error = %v, want *UnmatchedOpenError", err)
	}
	if uoe.Line != 2 || uoe.Column != 2 {
		t.Errorf("position = %d:%d, want 2:2", uoe.Line, uoe.Column)
	}
}

func TestConvert_EmptySource(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	res, err := conv.Convert(context.Background(), Input{Format: FormatFragment})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.HTML) != 0 {
		t.Errorf("HTML = %q, want empty", res.HTML)
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, withProcessor(panickingProcessor{}))

	_, err := conv.Convert(context.Background(), Input{Source: "x"})
	if err == nil || !strings.Contains(err.Error(), "internal error: boom") {
		t.Errorf("Convert() error = %v, want internal error", err)
	}
}

func TestConvert_ContextCancellation(t *testing.T) {
	t.Parallel()

	conv, mock := newTestConverter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Source: "x", Format: FormatPDF})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
	if mock.called {
		t.Error("PDF converter called after cancellation")
	}
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	conv, err := NewConverter(withPDFConverter(mock))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("Close() did not close the PDF converter")
	}

	if err := (&Converter{}).Close(); err != nil {
		t.Errorf("Close() on zero Converter error = %v", err)
	}
}
