package pipeline

import (
	"strings"

	"github.com/alnah/go-pqlite/internal/ast"
	"github.com/alnah/go-pqlite/internal/parser"
)

// isURLTooltip reports whether n is a bracket group shaped like a link or
// tooltip target: [tooltip], [url] or [url tooltip], where the tooltip is a
// quote (before extraction) or tooltip text (after).
func isURLTooltip(n ast.Node) bool {
	b, ok := n.(*ast.Bracketed)
	if !ok || len(b.Children) == 0 {
		return false
	}

	var tooltip bool
	switch b.Children[len(b.Children)-1].(type) {
	case *ast.Quoted, *ast.TooltipText:
		tooltip = true
	}
	_, url := b.Children[0].(*ast.Text)

	switch len(b.Children) {
	case 1:
		return tooltip != url
	case 2:
		return tooltip && url
	default:
		return false
	}
}

// ExtractTooltipText replaces the trailing quote of every link or tooltip
// bracket group with the raw quote source, stripped of its outer quote marks
// and of comments. Formatting inside a tooltip is therefore never processed.
// Parents are handled before their children.
func ExtractTooltipText(root ast.Node) error {
	return ast.PreOrder(root, func(children []ast.Node) ([]ast.Node, error) {
		for _, c := range children {
			if !isURLTooltip(c) {
				continue
			}
			b := c.(*ast.Bracketed)
			last := len(b.Children) - 1
			q, ok := b.Children[last].(*ast.Quoted)
			if !ok {
				continue
			}
			value, err := tooltipText(q)
			if err != nil {
				return nil, err
			}
			b.Children[last] = &ast.TooltipText{Value: value}
		}
		return children, nil
	})
}

// tooltipText strips every leading open quote, every trailing close quote
// and all comments from the source of q. Errors carry offsets into the whole
// input.
func tooltipText(q *ast.Quoted) (string, error) {
	trimmed := strings.TrimLeft(q.Raw, parser.OpenQuote)
	lead := len(q.Raw) - len(trimmed)
	trimmed = strings.TrimRight(trimmed, parser.CloseQuote)

	value, err := parser.StripComments(trimmed)
	if err != nil {
		return "", parser.Relocate(err, q.Offset+lead)
	}
	return value, nil
}
