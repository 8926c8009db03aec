// Package pqlite compiles pqlite markup to HTML.
//
// # Quick Start
//
// Compile a document to a bare HTML fragment:
//
//	html, err := pqlite.CompileUnwrapped("*‘bold’ and ‘a link’[https://example.com]")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or write a complete HTML page, shell included:
//
//	err := pqlite.CompileWrapped(source, os.Stdout)
//
// # Markup
//
// Curly quotes ‘…’ group text. A marker right before a quote formats it:
// *‘bold’, _‘underline’, -‘strike’, ~‘italic’, >‘quote’, H‘header’,
// /\‘sup’ and \/‘sub’. H(n)‘…’ picks the header level 3-n.
//
// Square brackets after a word turn it into a link or tooltip:
// word[https://…], word[‘tooltip’] or word[https://… ‘title’]. Curly braces
// {…} hide their content behind a click. Backticks quote code verbatim,
// "> " starts a blockquote that ends with the line, and [[[…]]] is a
// comment.
//
// The compiler is forgiving: a delimiter that never closes is output as
// text. The only error is an unclosed comment, reported as an
// *UnmatchedOpenError with its line and column.
//
// # Compilation Pipeline
//
//  1. Parsing into a syntax tree that shares the input text
//  2. Tree rewriting (shorthands, spoilers, links and tooltips)
//  3. HTML rendering, optionally inside a document shell
//  4. PDF rendering via headless Chrome (go-rod), for FormatPDF only
//
// # Converter
//
// Converter adds document shells, extra CSS, code highlighting and PDF
// output on top of the compiler:
//
//	conv, err := pqlite.NewConverter(
//	    pqlite.WithTimeout(time.Minute),
//	    pqlite.WithHighlighting("monokai"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, pqlite.Input{
//	    Source: source,
//	    Format: pqlite.FormatPDF,
//	    Page:   &pqlite.PageSettings{Size: "a4"},
//	})
//
// For batch processing use ConverterPool, which hands out one Converter (and
// one browser) per worker.
//
// # Concurrency
//
// CompileUnwrapped, CompileWrapped and Parse are safe for concurrent use:
// each call owns its tree. A Converter is not; use one per goroutine.
package pqlite
