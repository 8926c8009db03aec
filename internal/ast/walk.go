package ast

// RewriteFunc rewrites the children of one container and returns the new
// children.
type RewriteFunc func(children []Node) ([]Node, error)

// PostOrder applies fn to every container under n, children first. A node is
// rewritten after all of its descendants have been rewritten. The first error
// stops the walk.
func PostOrder(n Node, fn RewriteFunc) error {
	c, ok := n.(Container)
	if !ok {
		return nil
	}
	for _, child := range c.Nodes() {
		if err := PostOrder(child, fn); err != nil {
			return err
		}
	}
	children, err := fn(c.Nodes())
	if err != nil {
		return err
	}
	c.SetNodes(children)
	return nil
}

// PreOrder applies fn to every container under n, parent first. The children
// returned by fn are the ones descended into.
func PreOrder(n Node, fn RewriteFunc) error {
	c, ok := n.(Container)
	if !ok {
		return nil
	}
	children, err := fn(c.Nodes())
	if err != nil {
		return err
	}
	c.SetNodes(children)
	for _, child := range children {
		if err := PreOrder(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Walk calls visit for n and every node below it in document order. Returning
// false from visit skips the children of that node.
func Walk(n Node, visit func(Node) bool) {
	if !visit(n) {
		return
	}
	c, ok := n.(Container)
	if !ok {
		return
	}
	for _, child := range c.Nodes() {
		Walk(child, visit)
	}
}

// Count returns the number of nodes of kind k under n, n included.
func Count(n Node, k Kind) int {
	total := 0
	Walk(n, func(node Node) bool {
		if node.Kind() == k {
			total++
		}
		return true
	})
	return total
}
