package pipeline

import (
	"context"
	"fmt"

	"github.com/alnah/go-pqlite/internal/ast"
)

// Pass rewrites a tree in place.
type Pass struct {
	Name string
	Run  func(root ast.Node) error
}

// Passes lists the rewrite passes in the order they must run.
var Passes = []Pass{
	{Name: "prune empty text", Run: PruneEmptyText},
	{Name: "extract tooltip text", Run: ExtractTooltipText},
	{Name: "resolve shorthands", Run: ResolveShorthands},
	{Name: "resolve spoilers", Run: ResolveSpoilers},
	{Name: "resolve brackets", Run: ResolveBrackets},
}

// Process runs every pass over root. It stops at the first failing pass and
// returns its error unwrapped, so callers can match parser errors directly.
func Process(root *ast.Root) error {
	for _, p := range Passes {
		if err := p.Run(root); err != nil {
			return err
		}
	}
	return nil
}

// TreeProcessor defines the contract for turning a parsed tree into a
// renderable one.
type TreeProcessor interface {
	ProcessTree(ctx context.Context, root *ast.Root) error
}

// StandardProcessor runs the standard passes.
type StandardProcessor struct{}

// ProcessTree runs the passes, checking for cancellation between them.
func (s *StandardProcessor) ProcessTree(ctx context.Context, root *ast.Root) error {
	for _, p := range Passes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		if err := p.Run(root); err != nil {
			return err
		}
	}
	return nil
}
