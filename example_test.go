package pqlite_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/alnah/go-pqlite"
)

func ExampleCompileUnwrapped() {
	html, err := pqlite.CompileUnwrapped("*‘bold’ and ‘a link’[https://example.com]")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(html)
	// Output: <b>bold</b> and <a href="https://example.com">a link</a>
}

func ExampleCompileUnwrapped_tooltip() {
	html, err := pqlite.CompileUnwrapped("pqlite[‘a lightweight markup’]")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(html)
	// Output: <abbr title="a lightweight markup">pqlite</abbr>
}

func ExampleCompileUnwrapped_error() {
	_, err := pqlite.CompileUnwrapped("text\n[[[unfinished comment")

	var unmatched *pqlite.UnmatchedOpenError
	if errors.As(err, &unmatched) {
		fmt.Println(unmatched.Line, unmatched.Column)
	}
	// Output: 2 1
}

func ExampleNewConverter() {
	conv, err := pqlite.NewConverter(pqlite.WithStyle("dark"))
	if err != nil {
		log.Fatal(err)
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), pqlite.Input{
		Source: "H‘Title’",
		Format: pqlite.FormatDocument,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile("output.html", result.HTML, 0o644); err != nil {
		log.Fatal(err)
	}
}
