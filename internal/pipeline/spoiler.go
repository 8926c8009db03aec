package pipeline

import "github.com/alnah/go-pqlite/internal/ast"

// Spoiler markup. The spoiler() script ships with the document shell.
const (
	SpoilerPrefix = `<span class="cu_brackets" onclick="return spoiler(this, event)">` +
		`<span class="cu_brackets_b">{</span><span>…</span><span class="cu" style="display: none">`
	SpoilerSuffix = `</span><span class="cu_brackets_b">}</span></span>`
)

// ResolveSpoilers turns every curly-braced group into a collapsed spoiler.
func ResolveSpoilers(root ast.Node) error {
	return ast.PostOrder(root, func(children []ast.Node) ([]ast.Node, error) {
		for i, c := range children {
			if cb, ok := c.(*ast.CurlyBraced); ok {
				children[i] = &ast.PrefixSuffix{Branch: cb.Branch, Prefix: SpoilerPrefix, Suffix: SpoilerSuffix}
			}
		}
		return children, nil
	})
}
