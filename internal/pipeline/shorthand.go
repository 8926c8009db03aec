package pipeline

import (
	"strconv"
	"strings"

	"github.com/alnah/go-pqlite/internal/ast"
)

// shorthand maps a marker written right before a quote to the markup that
// replaces the quote marks.
type shorthand struct {
	marker string
	prefix string
	suffix string
}

// shorthands are tried in order; the first marker that ends the text wins.
var shorthands = []shorthand{
	{"*", "<b>", "</b>"},
	{"_", "<u>", "</u>"},
	{"-", "<s>", "</s>"},
	{"~", "<i>", "</i>"},
	{">", "<blockquote>", "</blockquote>"},
	{"H", "<h3>", "</h3>"},
	{`/\`, "<sup>", "</sup>"},
	{`\/`, "<sub>", "</sub>"},
}

// Header shorthand H(n): level 3-n, kept within HTML heading levels.
const (
	headerMarker = "H("
	headerBase   = 3
	minHeader    = 1
	maxHeader    = 6
)

// ResolveShorthands rewrites every quote directly preceded by text ending in
// a formatting marker. The marker is cut from the text and the quote becomes
// the matching formatted span. Text ending in H(n) turns the quote into a
// header of level 3-n; levels outside 1..6 leave both nodes untouched.
func ResolveShorthands(root ast.Node) error {
	return ast.PostOrder(root, func(children []ast.Node) ([]ast.Node, error) {
		for i := 1; i < len(children); i++ {
			pre, ok := children[i-1].(*ast.Text)
			if !ok {
				continue
			}
			q, ok := children[i].(*ast.Quoted)
			if !ok {
				continue
			}
			if node, ok := applyShorthand(pre, q); ok {
				children[i] = node
			}
		}
		return children, nil
	})
}

// applyShorthand returns the replacement for q, trimming pre in place when a
// marker matches.
func applyShorthand(pre *ast.Text, q *ast.Quoted) (ast.Node, bool) {
	for _, s := range shorthands {
		if strings.HasSuffix(pre.Value, s.marker) {
			pre.Value = pre.Value[:len(pre.Value)-len(s.marker)]
			return &ast.PrefixSuffix{Branch: q.Branch, Prefix: s.prefix, Suffix: s.suffix}, true
		}
	}

	if !strings.HasSuffix(pre.Value, ")") {
		return nil, false
	}
	h := strings.LastIndex(pre.Value, headerMarker)
	if h < 0 {
		return nil, false
	}
	n, err := strconv.ParseInt(pre.Value[h+len(headerMarker):len(pre.Value)-1], 10, 32)
	if err != nil {
		return nil, false
	}
	level := headerBase - n
	if level < minHeader || level > maxHeader {
		return nil, false
	}
	pre.Value = pre.Value[:h]
	return &ast.Header{Branch: q.Branch, Level: int(level)}, true
}
