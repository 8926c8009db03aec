package pipeline

import "github.com/alnah/go-pqlite/internal/ast"

// PruneEmptyText removes Text leaves with an empty value anywhere in the
// tree.
func PruneEmptyText(root ast.Node) error {
	return ast.PostOrder(root, func(children []ast.Node) ([]ast.Node, error) {
		kept := children[:0]
		for _, c := range children {
			if t, ok := c.(*ast.Text); ok && t.Value == "" {
				continue
			}
			kept = append(kept, c)
		}
		clear(children[len(kept):])
		return kept, nil
	})
}
