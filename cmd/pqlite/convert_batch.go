package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/fileutil"
	"github.com/alnah/go-pqlite/internal/hints"
	"github.com/alnah/go-pqlite/internal/logger"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrWriteOutput   = errors.New("failed to write output file")
	ErrConverterInit = errors.New("failed to initialize converter")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input pqlite.Input) (*pqlite.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*pqlite.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Size       int
	Err        error
	Hint       string
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Without a converter this worker fails the jobs it takes.
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrConverterInit, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	src, err := readSourceFile(f.InputPath)
	if err != nil {
		return fail(err)
	}

	out, err := compileSource(ctx, conv, src, params)
	if err != nil {
		result.Hint = errorHint(err, src)
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Hint = hints.ForOutputDirectory()
		return fail(fmt.Errorf("creating output directory: %w", err))
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, out, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}

	result.Size = len(out)
	result.Duration = time.Since(start)
	return result
}

// compileSource converts src and returns the bytes of the requested format.
func compileSource(ctx context.Context, conv CLIConverter, src string, params *conversionParams) ([]byte, error) {
	res, err := conv.Convert(ctx, pqlite.Input{
		Source: src,
		Format: params.format,
		CSS:    params.css,
		Page:   params.page,
	})
	if err != nil {
		return nil, err
	}
	if params.format == pqlite.FormatPDF {
		return res.PDF, nil
	}
	return res.HTML, nil
}

// errorHint returns the hint matching err, or "".
func errorHint(err error, src string) string {
	var unmatched *pqlite.UnmatchedOpenError
	switch {
	case errors.As(err, &unmatched):
		return hints.ForParseError(src, unmatched.Line, unmatched.Column, unmatched.Missing)
	case errors.Is(err, pqlite.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	}
	return ""
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// reportResults logs each result and the batch summary, and returns the
// number of failures.
func reportResults(results []ConversionResult, elapsed time.Duration, log *logger.Logger, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			log.FileError(r.InputPath, r.Err)
			if r.Hint != "" {
				fmt.Fprintln(env.Stderr, r.Hint[1:])
			}
			continue
		}
		log.FileConverted(r.InputPath, r.OutputPath, r.Size, r.Duration)
	}

	if len(results) > 1 {
		log.BatchCompleted(summary.Succeeded, summary.Failed, elapsed)
	}
	return summary.Failed
}
