// Package ast defines the pqlite syntax tree.
//
// The tree is built once per input by the parser, rewritten in place by the
// pipeline passes and serialized by the renderer. Text leaves hold substrings
// of the original input, so building the tree does not copy input text. Only
// labels synthesized from URLs and tooltips stripped of comments carry fresh
// strings.
package ast

// Kind identifies the variant of a node.
type Kind int

// Node kinds.
const (
	KindText Kind = iota
	KindNoBrText
	KindCowText
	KindTooltipText
	KindRoot
	KindQuoted
	KindBracketed
	KindCurlyBraced
	KindBlockQuoted
	KindCodeQuoted
	KindPrefixSuffix
	KindHeader
	KindTooltip
	KindLink
)

var kindNames = [...]string{
	KindText:         "Text",
	KindNoBrText:     "NoBrText",
	KindCowText:      "CowText",
	KindTooltipText:  "TooltipText",
	KindRoot:         "Root",
	KindQuoted:       "Quoted",
	KindBracketed:    "Bracketed",
	KindCurlyBraced:  "CurlyBraced",
	KindBlockQuoted:  "BlockQuoted",
	KindCodeQuoted:   "CodeQuoted",
	KindPrefixSuffix: "PrefixSuffix",
	KindHeader:       "Header",
	KindTooltip:      "Tooltip",
	KindLink:         "Link",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
}

// Container is a node that owns an ordered sequence of children.
type Container interface {
	Node
	Nodes() []Node
	SetNodes([]Node)
}

// Branch holds the children of a container node. It is embedded by every
// container variant.
type Branch struct {
	Children []Node
}

// Nodes returns the children in document order.
func (b *Branch) Nodes() []Node { return b.Children }

// SetNodes replaces the children.
func (b *Branch) SetNodes(ns []Node) { b.Children = ns }

// Text is a run of literal content taken from the input.
type Text struct {
	Value string
}

// NoBrText is literal content of a code region. Newlines are kept as is.
type NoBrText struct {
	Value string
}

// CowText is literal content that may have been synthesized rather than
// taken from the input, e.g. a link label derived from its URL.
type CowText struct {
	Value string
}

// TooltipText holds resolved tooltip content between tooltip extraction and
// bracket resolution. It must not reach the renderer.
type TooltipText struct {
	Value string
}

// Root is the whole document.
type Root struct {
	Branch
}

// Quoted is a span between curly quotes. Raw is the exact source of the span,
// quote marks and comments included, and Offset its byte position in the
// input.
type Quoted struct {
	Branch
	Raw    string
	Offset int
}

// Bracketed is a span between square brackets.
type Bracketed struct {
	Branch
}

// CurlyBraced is a span between curly braces.
type CurlyBraced struct {
	Branch
}

// BlockQuoted is a line introduced by "> ".
type BlockQuoted struct {
	Branch
}

// CodeQuoted is a backtick code region. Its only child is a NoBrText.
type CodeQuoted struct {
	Branch
}

// PrefixSuffix wraps its children in fixed markup.
type PrefixSuffix struct {
	Branch
	Prefix string
	Suffix string
}

// Header is a heading of level 1 to 6.
type Header struct {
	Branch
	Level int
}

// Tooltip shows Title when hovering its children.
type Tooltip struct {
	Branch
	Title string
}

// Link points to Target. Title is only rendered when HasTitle is set, since
// an empty title is still a title.
type Link struct {
	Branch
	Target   string
	Title    string
	HasTitle bool
}

func (*Text) Kind() Kind         { return KindText }
func (*NoBrText) Kind() Kind     { return KindNoBrText }
func (*CowText) Kind() Kind      { return KindCowText }
func (*TooltipText) Kind() Kind  { return KindTooltipText }
func (*Root) Kind() Kind         { return KindRoot }
func (*Quoted) Kind() Kind       { return KindQuoted }
func (*Bracketed) Kind() Kind    { return KindBracketed }
func (*CurlyBraced) Kind() Kind  { return KindCurlyBraced }
func (*BlockQuoted) Kind() Kind  { return KindBlockQuoted }
func (*CodeQuoted) Kind() Kind   { return KindCodeQuoted }
func (*PrefixSuffix) Kind() Kind { return KindPrefixSuffix }
func (*Header) Kind() Kind       { return KindHeader }
func (*Tooltip) Kind() Kind      { return KindTooltip }
func (*Link) Kind() Kind         { return KindLink }

// Compile-time interface checks.
var (
	_ Container = (*Root)(nil)
	_ Container = (*Quoted)(nil)
	_ Container = (*Bracketed)(nil)
	_ Container = (*CurlyBraced)(nil)
	_ Container = (*BlockQuoted)(nil)
	_ Container = (*CodeQuoted)(nil)
	_ Container = (*PrefixSuffix)(nil)
	_ Container = (*Header)(nil)
	_ Container = (*Tooltip)(nil)
	_ Container = (*Link)(nil)
)

// NewRoot creates a Root holding children.
func NewRoot(children ...Node) *Root {
	return &Root{Branch: Branch{Children: children}}
}
