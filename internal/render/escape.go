package render

import "strings"

// Escaping contexts. The renderer writes through these with sink.escaped;
// sink.text adds the leading-newline rule on top of textEscaper.
var (
	// codeEscaper escapes text inside <pre> blocks.
	codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	// textEscaper also turns newlines into explicit line breaks.
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\n", "<br />\n")

	// attrEscaper escapes double-quoted attribute values.
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)
