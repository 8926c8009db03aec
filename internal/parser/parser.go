// Package parser turns pqlite markup into an unprocessed syntax tree.
//
// The parser is forgiving: a delimiter without its closer is kept as literal
// text. The only failure is a triple-bracket comment that never closes.
package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-pqlite/internal/ast"
)

// Curly quotes delimiting Quoted spans.
const (
	OpenQuote  = "‘"
	CloseQuote = "’"
)

// interesting holds the first runes of every opener.
const interesting = OpenQuote + "[{>`"

// closers maps each opener handled by recursion to its closer.
var closers = map[string]string{
	OpenQuote: CloseQuote,
	"[":       "]",
	"{":       "}",
	"> ":      "\n",
}

// Parse builds the syntax tree of input. Text leaves are substrings of input.
// The tree still has to go through the rewrite passes before rendering.
func Parse(input string) (*ast.Root, error) {
	p := &parser{input: input}
	nodes, err := p.parse("")
	if err != nil {
		p.locate(err)
		return nil, err
	}
	return ast.NewRoot(nodes...), nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) locate(err error) {
	if uoe, ok := err.(*UnmatchedOpenError); ok {
		uoe.Locate(p.input)
	}
}

// parse consumes nodes until closer is found or the input ends. The closer
// itself is left for the caller. An empty closer means top level.
func (p *parser) parse(closer string) ([]ast.Node, error) {
	set := interesting
	if closer != "" {
		set += firstRune(closer)
	}

	var nodes []ast.Node
	for p.pos < len(p.input) {
		next := p.nextInteresting(set, closer)
		if next < 0 {
			nodes = append(nodes, &ast.Text{Value: p.input[p.pos:]})
			p.pos = len(p.input)
			break
		}

		// Text up to the delimiter, possibly empty.
		nodes = append(nodes, &ast.Text{Value: p.input[p.pos:next]})
		p.pos = next

		opener := openerAt(p.input[next:], closer)
		if closer != "" && opener == closer {
			break
		}
		p.pos += len(opener)

		switch {
		case opener == commentOpen:
			end, err := SkipComment(p.input, p.pos, next)
			if err != nil {
				return nil, err
			}
			p.pos = end

		case opener[0] == '`':
			nodes = append(nodes, p.code(opener, next))

		default:
			closing := closers[opener]
			inner, err := p.parse(closing)
			if err != nil {
				return nil, err
			}
			if p.pos == len(p.input) {
				// Unclosed: keep the opener as text and stop at this level.
				nodes = append(nodes, &ast.Text{Value: p.input[next : next+len(opener)]})
				nodes = append(nodes, inner...)
				return nodes, nil
			}
			p.pos += len(closing)
			nodes = append(nodes, p.container(opener, inner, next))
		}
	}
	return nodes, nil
}

// nextInteresting returns the offset of the next delimiter at or after the
// cursor, or -1. A ">" only counts when followed by a space, and the first
// rune of closer only counts when the whole closer is there.
func (p *parser) nextInteresting(set, closer string) int {
	from := p.pos
	for {
		i := strings.IndexAny(p.input[from:], set)
		if i < 0 {
			return -1
		}
		at := from + i
		rest := p.input[at:]

		skip := rest[0] == '>' && !strings.HasPrefix(rest, "> ")
		if !skip && closer != "" && strings.HasPrefix(rest, firstRune(closer)) {
			skip = !strings.HasPrefix(rest, closer)
		}
		if !skip {
			return at
		}
		_, size := utf8.DecodeRuneInString(rest)
		from = at + size
	}
}

// openerAt picks the longest delimiter at the start of rest.
func openerAt(rest, closer string) string {
	switch {
	case strings.HasPrefix(rest, OpenQuote):
		return OpenQuote
	case strings.HasPrefix(rest, commentOpen):
		return commentOpen
	case strings.HasPrefix(rest, "["):
		return "["
	case strings.HasPrefix(rest, "{"):
		return "{"
	case strings.HasPrefix(rest, "```"):
		return "```"
	case strings.HasPrefix(rest, "``"):
		return "``"
	case strings.HasPrefix(rest, "`"):
		return "`"
	case strings.HasPrefix(rest, ">"):
		return "> "
	default:
		return closer
	}
}

// code reads a backtick region closed by the same run. The body is taken
// verbatim. Without a closer the run is literal text.
func (p *parser) code(run string, start int) ast.Node {
	end := strings.Index(p.input[p.pos:], run)
	if end < 0 {
		return &ast.Text{Value: p.input[start:p.pos]}
	}
	body := p.input[p.pos : p.pos+end]
	p.pos += end + len(run)
	return &ast.CodeQuoted{Branch: ast.Branch{Children: []ast.Node{&ast.NoBrText{Value: body}}}}
}

// container builds the node for a closed delimiter pair that started at
// start. The cursor sits right after the closer.
func (p *parser) container(opener string, inner []ast.Node, start int) ast.Node {
	b := ast.Branch{Children: inner}
	switch opener {
	case OpenQuote:
		return &ast.Quoted{Branch: b, Raw: p.input[start:p.pos], Offset: start}
	case "[":
		return &ast.Bracketed{Branch: b}
	case "{":
		return &ast.CurlyBraced{Branch: b}
	default:
		return &ast.BlockQuoted{Branch: b}
	}
}

func firstRune(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}
