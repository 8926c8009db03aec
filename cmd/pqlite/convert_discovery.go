package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/fileutil"
)

// sourceExtensions are the file extensions treated as pqlite markup.
var sourceExtensions = []string{".pq", ".pqlite", ".txt"}

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoSources          = errors.New("no pqlite sources found")
	ErrInvalidExtension   = errors.New("file must have a .pq, .pqlite or .txt extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the sources under inputPath and pairs each with the
// output path carrying ext.
func discoverFiles(inputPath, outputDir, ext string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateSourceExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", ext)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isSource(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, ext)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, inputPath)
	}
	return files, nil
}

// resolveOutputPath determines the output path for a source file.
// An outputDir ending in ext names the output file itself. Sources found
// under baseInputDir keep their relative directory.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	name := fileutil.ReplaceExtension(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if baseInputDir == "" && fileutil.HasExtension(outputDir, ext) {
		return outputDir
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// isSource reports whether path has a markup extension.
func isSource(path string) bool {
	return fileutil.HasExtension(path, sourceExtensions...)
}

// validateSourceExtension checks that the file has a markup extension.
func validateSourceExtension(path string) error {
	if !isSource(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > pqlite.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, pqlite.MaxPoolSize)
	}
	return nil
}
