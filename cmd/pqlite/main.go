package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/assets"
	"github.com/alnah/go-pqlite/internal/config"
	"github.com/alnah/go-pqlite/internal/hints"
	"github.com/alnah/go-pqlite/internal/logger"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for a command runMain does not know.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1] to its command and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "convert":
		err = runConvertCmd(ctx, rest, env)
	case "watch":
		err = runWatchCmd(ctx, rest, env)
	case "tree":
		err = runTreeCmd(rest, env)
	case "check":
		err = runCheckCmd(rest, env)
	case "config":
		err = runConfigCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "pqlite %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		if hint := setupHint(err); hint != "" {
			fmt.Fprintln(env.Stderr, hint[1:])
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(log *logger.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(log.Debugf))
}

// setupHint returns the hint for errors raised before any file is compiled.
// Per-file hints are printed with each result.
func setupHint(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(defaultConfigName))
	case errors.Is(err, pqlite.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, pqlite.ErrShellNotFound):
		return hints.ForStyleNotFound(assets.ShellNames())
	}
	return ""
}
