package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownStyle is returned for a highlight style chroma does not ship.
var ErrUnknownStyle = errors.New("unknown highlight style")

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "github"

// highlightClass is set on highlighted <pre> blocks and scopes the
// stylesheet.
const highlightClass = "chroma"

// Highlighter colors code blocks with chroma. Code blocks carry no language,
// so the lexer is guessed from the content.
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter creates a Highlighter for the named chroma style.
func NewHighlighter(style string) (*Highlighter, error) {
	if style == "" {
		style = DefaultStyle
	}
	if !slices.Contains(styles.Names(), style) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	return &Highlighter{style: styles.Get(style)}, nil
}

// CSS returns the stylesheet for the highlighted classes.
func (h *Highlighter) CSS() (string, error) {
	var b strings.Builder
	f := chromahtml.New(chromahtml.WithClasses(true))
	if err := f.WriteCSS(&b, h.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return b.String(), nil
}

// write renders code as a highlighted <pre> block. Tokens without a class
// are written as plain escaped text.
func (h *Highlighter) write(s *sink, code string) {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		s.str("<pre>")
		s.escaped(codeEscaper, code)
		s.str("</pre>")
		return
	}

	s.str(`<pre class="` + highlightClass + `">`)
	for tok := it(); tok != chroma.EOF; tok = it() {
		if tok.Value == "" {
			continue
		}
		cls := tokenClass(tok.Type)
		if cls == "" {
			s.escaped(codeEscaper, tok.Value)
			continue
		}
		s.str(`<span class="` + cls + `">`)
		s.escaped(codeEscaper, tok.Value)
		s.str("</span>")
	}
	s.str("</pre>")
}

// tokenClass returns the short CSS class of t, falling back to its
// sub-category and category.
func tokenClass(t chroma.TokenType) string {
	for _, c := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if cls, ok := chroma.StandardTypes[c]; ok {
			return cls
		}
	}
	return ""
}
