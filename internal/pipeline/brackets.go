package pipeline

import (
	"slices"
	"strings"
	"unicode"

	"github.com/alnah/go-pqlite/internal/ast"
)

// target is what a link or tooltip bracket group carries.
type target struct {
	url        string
	hasURL     bool
	tooltip    string
	hasTooltip bool
}

// fallback is the label used when no sibling provides one.
func (t target) fallback() []ast.Node {
	if t.hasURL {
		return []ast.Node{&ast.CowText{Value: t.url}}
	}
	return []ast.Node{&ast.CowText{Value: t.tooltip}}
}

// targetOf reads the URL and tooltip of a bracket group that passed
// isURLTooltip and went through tooltip extraction.
func targetOf(b *ast.Bracketed) (target, bool) {
	var t target
	switch len(b.Children) {
	case 1:
		switch n := b.Children[0].(type) {
		case *ast.TooltipText:
			t.tooltip, t.hasTooltip = n.Value, true
		case *ast.Text:
			t.url, t.hasURL = strings.TrimRightFunc(n.Value, unicode.IsSpace), true
		default:
			return t, false
		}
	case 2:
		url, ok := b.Children[0].(*ast.Text)
		if !ok {
			return t, false
		}
		tip, ok := b.Children[1].(*ast.TooltipText)
		if !ok {
			return t, false
		}
		t.url, t.hasURL = strings.TrimRightFunc(url.Value, unicode.IsSpace), true
		t.tooltip, t.hasTooltip = tip.Value, true
	default:
		return t, false
	}
	return t, true
}

// ResolveBrackets turns bracket groups shaped like [url], [‘tooltip’] or
// [url ‘tooltip’] into links or tooltips. The label comes from the node just
// before the group:
//   - text without whitespace is the label
//   - text ending in whitespace is kept and the URL (or tooltip) is the label
//   - otherwise the last word of the text is the label and the rest is kept
//   - a quote lends its content as the label
//   - any other node is the label as a whole
//
// Without a preceding node the URL (or tooltip) is the label.
func ResolveBrackets(root ast.Node) error {
	return ast.PostOrder(root, func(children []ast.Node) ([]ast.Node, error) {
		for i := 0; i < len(children); i++ {
			if !isURLTooltip(children[i]) {
				continue
			}
			t, ok := targetOf(children[i].(*ast.Bracketed))
			if !ok {
				continue
			}

			var label []ast.Node
			hasSibling := i > 0
			keepSibling := false
			if !hasSibling {
				label = t.fallback()
			} else {
				label, keepSibling = splitLabel(children[i-1], t)
			}

			if t.hasURL {
				children[i] = &ast.Link{
					Branch:   ast.Branch{Children: label},
					Target:   t.url,
					Title:    t.tooltip,
					HasTitle: t.hasTooltip,
				}
			} else {
				children[i] = &ast.Tooltip{Branch: ast.Branch{Children: label}, Title: t.tooltip}
			}

			if hasSibling && !keepSibling {
				children = slices.Delete(children, i-1, i)
				i--
			}
		}
		return children, nil
	})
}

// splitLabel derives the label from the sibling before a bracket group and
// reports whether the sibling stays in the tree. A kept text sibling may be
// shortened in place.
func splitLabel(sibling ast.Node, t target) ([]ast.Node, bool) {
	switch s := sibling.(type) {
	case *ast.Text:
		sep := lastASCIISpace(s.Value)
		switch {
		case sep < 0:
			return []ast.Node{s}, false
		case sep == len(s.Value)-1:
			return t.fallback(), true
		default:
			word := &ast.Text{Value: s.Value[sep+1:]}
			s.Value = s.Value[:sep]
			return []ast.Node{word}, true
		}
	case *ast.Quoted:
		return s.Children, false
	default:
		return []ast.Node{s}, false
	}
}

// lastASCIISpace returns the index of the last ASCII whitespace byte in s, or
// -1. Vertical tab does not count.
func lastASCIISpace(s string) int {
	return strings.LastIndexFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return true
		}
		return false
	})
}
