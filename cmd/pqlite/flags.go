package main

import (
	"time"

	flag "github.com/spf13/pflag"
)

// defaultDebounce groups the burst of events an editor emits on save.
const defaultDebounce = 150 * time.Millisecond

// commonFlags holds flags shared by all commands that read a config.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds PDF page flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags holds styling and shell flags.
type assetFlags struct {
	style          string
	css            string
	shell          string
	assetPath      string
	noStyle        bool
	highlight      bool
	highlightStyle string
}

// convertFlags holds all flags of the convert and watch commands.
type convertFlags struct {
	common   commonFlags
	output   string
	format   string
	workers  int
	timeout  time.Duration
	page     pageFlags
	assets   assetFlags
	debounce time.Duration // watch only
}

// treeFlags holds flags of the tree command.
type treeFlags struct {
	compact bool
}

// checkFlags holds flags of the check command.
type checkFlags struct {
	quiet   bool
	verbose bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "margin in inches (0.25-3.0)")
}

// addAssetFlags adds styling flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style name or CSS file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.shell, "shell", "", "document shell name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable styles and extra CSS")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight code blocks")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "highlight style name (implies --highlight)")
}

// newConvertFlagSet registers the convert flags on a new FlagSet.
func newConvertFlagSet(name string, f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (- for stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: document, fragment, pdf")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet("convert", f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet("watch", f)
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "delay before recompiling after a change")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printWatchUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseTreeFlags parses tree command flags and returns positional args.
func parseTreeFlags(args []string, env *Environment) (*treeFlags, []string, error) {
	f := &treeFlags{}
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.BoolVar(&f.compact, "compact", false, "print the tree on one line")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printTreeUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string, env *Environment) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print the summary")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "list passing files too")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printCheckUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, env *Environment) (*commonFlags, error) {
	f := &commonFlags{}
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	addCommonFlags(fs, f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printConfigUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
