package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pqlite <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Compile pqlite sources to HTML or PDF")
	fmt.Fprintln(w, "  watch      Recompile sources when they change")
	fmt.Fprintln(w, "  tree       Print the syntax tree of a source")
	fmt.Fprintln(w, "  check      Run fixture files against the compiler")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check the environment for PDF output")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pqlite help <command>' for details on a specific command.")
}

// printConvertFlags prints the flags shared by convert and watch.
func printConvertFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (- for stdout)")
	fmt.Fprintln(w, "  -f, --format <s>          Output: document, fragment, pdf (default document)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (pdf only):")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name (dark, print) or CSS file path")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --shell <name>        Document shell name")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom styles/ and shells/")
	fmt.Fprintln(w, "      --no-style            Disable styles and extra CSS")
	fmt.Fprintln(w, "      --highlight           Highlight code blocks")
	fmt.Fprintln(w, "      --highlight-style <s> Highlight style name (implies --highlight)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pqlite convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile pqlite sources to HTML or PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Source file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printConvertFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pqlite watch <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile sources, then recompile each one when it changes.")
	fmt.Fprintln(w, "Stop with Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Source file or directory")
	fmt.Fprintln(w)
	printConvertFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>        Delay before recompiling (default 150ms)")
}

// printTreeUsage prints usage for the tree command.
func printTreeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pqlite tree [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the syntax tree of a source after all rewrites.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Source file, or - for stdin (default)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --compact             Print the tree on one line")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pqlite check <fixture>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile every case of each fixture file and compare the output.")
	fmt.Fprintln(w, "Cases are separated by \"|\\n\\n|\", input and output by \" (()) \".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quiet               Only print the summary")
	fmt.Fprintln(w, "  -v, --verbose             List passing files too")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pqlite config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after the config file and PQLITE_*")
	fmt.Fprintln(w, "environment variables are applied.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Omit the config path comment")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pqlite doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, built-in assets, config locations and the temp directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "tree":
		printTreeUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pqlite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pqlite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
