package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/config"
	"github.com/alnah/go-pqlite/internal/fileutil"
	"github.com/alnah/go-pqlite/internal/logger"
)

// ErrConversionFailed is returned when at least one file of a batch fails.
var ErrConversionFailed = errors.New("conversion failed")

// convertSetup holds everything resolved before the first conversion.
type convertSetup struct {
	cfg    *config.Config
	params *conversionParams
	opts   []pqlite.Option
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env)
	if err != nil {
		return flagError(err)
	}

	log := logger.NewWithLevel(env.Stderr, logger.LevelFor(flags.common.quiet, flags.common.verbose))
	setMaxProcs(log)
	warnUnknownEnvVars(log)

	return runConvert(ctx, positional, flags, env, log)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment, log *logger.Logger) error {
	setup, err := prepareConvert(flags, log)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, setup.cfg)
	if err != nil {
		return err
	}

	if inputPath == stdinName {
		pool := newConverterPool(1, setup.opts...)
		defer closePool(pool, log)
		return convertStream(ctx, pool, setup.params, flags.output, env)
	}

	outputDir := resolveOutputDir(flags.output, setup.cfg)
	files, err := discoverFiles(inputPath, outputDir, outputExtension(setup.params.format))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	pool := newConverterPool(pqlite.ResolvePoolSize(setup.cfg.Workers), setup.opts...)
	defer closePool(pool, log)
	log.PoolStarted(pool.Size())

	start := env.Now()
	results := convertBatch(ctx, pool, files, setup.params)
	return batchError(results, reportResults(results, env.Now().Sub(start), log, env))
}

// prepareConvert loads and merges configuration, then resolves the options
// and parameters every conversion of the run shares.
func prepareConvert(flags *convertFlags, log *logger.Logger) (*convertSetup, error) {
	if err := validateWorkers(flags.workers); err != nil {
		return nil, err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		log.ConfigLoaded(cfg.Path)
	}

	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateWorkers(cfg.Workers); err != nil {
		return nil, err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return nil, err
	}

	params, err := buildConversionParams(cfg)
	if err != nil {
		return nil, err
	}

	return &convertSetup{
		cfg:    cfg,
		params: params,
		opts:   buildConverterOptions(cfg, timeout),
	}, nil
}

// convertStream converts stdin to output, or to stdout when output is empty
// or "-".
func convertStream(ctx context.Context, pool Pool, params *conversionParams, output string, env *Environment) error {
	src, err := readStdin(env)
	if err != nil {
		return err
	}

	conv, err := pool.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	defer pool.Release(conv)

	out, err := compileSource(ctx, conv, src, params)
	if err != nil {
		if hint := errorHint(err, src); hint != "" {
			fmt.Fprintln(env.Stderr, hint[1:])
		}
		return err
	}

	if output == "" || output == stdinName {
		if _, err := env.Stdout.Write(out); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(output, out, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// resolveInputPath returns the positional input, else the configured
// default directory.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlag, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the output flag, else the configured default.
// Empty means next to each source.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// batchError summarizes failures. The first failure stays reachable through
// errors.Is so the exit code reflects its cause.
func batchError(results []ConversionResult, failed int) error {
	if failed == 0 {
		return nil
	}
	var first error
	for _, r := range results {
		if r.Err != nil {
			first = r.Err
			break
		}
	}
	return fmt.Errorf("%w: %d of %d file(s): %w", ErrConversionFailed, failed, len(results), first)
}

// closePool closes pool and logs a failure to release the browser.
func closePool(pool *converterPool, log *logger.Logger) {
	if err := pool.Close(); err != nil {
		log.Warn("closing converters", "error", err)
	}
}

// flagError marks a flag parsing error as a usage error.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidFlag, err)
}
