// Package render serializes a processed pqlite tree to HTML.
//
// Fragment writes the bare HTML of the tree. Document wraps it between the
// header and footer of a document shell. Output is byte-for-byte stable: the
// same tree always renders the same bytes.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-pqlite/internal/ast"
	"github.com/alnah/go-pqlite/internal/parser"
)

// Shell is the fixed markup around a rendered fragment.
type Shell struct {
	Header string
	Footer string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlighter enables syntax highlighting of code blocks.
func WithHighlighter(h *Highlighter) Option {
	return func(r *Renderer) {
		r.highlighter = h
	}
}

// Renderer writes trees as HTML. The zero value renders without
// highlighting. A Renderer holds no per-call state and is safe for
// concurrent use.
type Renderer struct {
	highlighter *Highlighter
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = &Renderer{}

// Fragment writes the HTML of root to w without highlighting.
func Fragment(w io.Writer, root ast.Node) error {
	return defaultRenderer.Fragment(w, root)
}

// Document writes root wrapped in shell to w without highlighting.
func Document(w io.Writer, root ast.Node, shell Shell) error {
	return defaultRenderer.Document(w, root, shell)
}

// Fragment writes the HTML of root to w. It returns the first write error;
// nothing is written after it.
func (r *Renderer) Fragment(w io.Writer, root ast.Node) error {
	s := &sink{w: w}
	r.node(s, root)
	return s.err
}

// Document writes shell.Header, the HTML of root and shell.Footer to w.
func (r *Renderer) Document(w io.Writer, root ast.Node, shell Shell) error {
	s := &sink{w: w}
	s.str(shell.Header)
	r.node(s, root)
	s.str(shell.Footer)
	return s.err
}

// sink keeps the first write error and drops every later write.
type sink struct {
	w   io.Writer
	err error
}

func (s *sink) str(v string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, v)
}

func (s *sink) escaped(rep *strings.Replacer, v string) {
	if s.err != nil {
		return
	}
	_, s.err = rep.WriteString(s.w, v)
}

// text writes v with line breaks. A single leading newline stays bare.
func (s *sink) text(v string) {
	if strings.HasPrefix(v, "\n") {
		s.str("\n")
		v = v[1:]
	}
	s.escaped(textEscaper, v)
}

func (r *Renderer) children(s *sink, c ast.Container) {
	for _, n := range c.Nodes() {
		r.node(s, n)
	}
}

func (r *Renderer) node(s *sink, n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		s.text(n.Value)
	case *ast.CowText:
		s.text(n.Value)
	case *ast.NoBrText:
		s.escaped(codeEscaper, n.Value)
	case *ast.Root:
		r.children(s, n)
	case *ast.Quoted:
		s.str(parser.OpenQuote)
		r.children(s, n)
		s.str(parser.CloseQuote)
	case *ast.Bracketed:
		s.str("[")
		r.children(s, n)
		s.str("]")
	case *ast.CurlyBraced:
		s.str("{")
		r.children(s, n)
		s.str("}")
	case *ast.BlockQuoted:
		s.str("<blockquote>")
		r.children(s, n)
		s.str("</blockquote>\n")
	case *ast.CodeQuoted:
		r.code(s, n)
	case *ast.PrefixSuffix:
		s.str(n.Prefix)
		r.children(s, n)
		s.str(n.Suffix)
	case *ast.Header:
		level := strconv.Itoa(n.Level)
		s.str("<h" + level + ">")
		r.children(s, n)
		s.str("</h" + level + ">")
	case *ast.Tooltip:
		s.str(`<abbr title="`)
		s.escaped(attrEscaper, n.Title)
		s.str(`">`)
		r.children(s, n)
		s.str("</abbr>")
	case *ast.Link:
		s.str(`<a href="`)
		s.escaped(attrEscaper, n.Target)
		if strings.HasPrefix(n.Target, "./") {
			s.str(`" target="_self`)
		}
		if n.HasTitle {
			s.str(`" title="`)
			s.escaped(attrEscaper, n.Title)
		}
		s.str(`">`)
		r.children(s, n)
		s.str("</a>")
	case *ast.TooltipText:
		panic("render: tooltip text must be resolved before rendering")
	default:
		panic(fmt.Sprintf("render: unknown node %T", n))
	}
}

func (r *Renderer) code(s *sink, n *ast.CodeQuoted) {
	if r.highlighter != nil && len(n.Children) == 1 {
		if body, ok := n.Children[0].(*ast.NoBrText); ok {
			r.highlighter.write(s, body.Value)
			return
		}
	}
	s.str("<pre>")
	r.children(s, n)
	s.str("</pre>")
}
