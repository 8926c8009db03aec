// Package pipeline rewrites the parsed pqlite tree into its renderable form.
//
// The passes run in a fixed order, each over the whole tree:
//   - PruneEmptyText drops empty text leaves left by the parser
//   - ExtractTooltipText freezes tooltip quotes into plain text
//   - ResolveShorthands turns marker-prefixed quotes into formatting and headers
//   - ResolveSpoilers turns curly braces into click-to-reveal spans
//   - ResolveBrackets turns bracket groups into links and tooltips
//
// Later passes rely on the shape left by earlier ones: bracket resolution
// expects tooltip text to be extracted and empty text to be gone. Rendering
// is handled by the render package.
package pipeline
