package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/logger"
)

// ErrWatch is returned when the file system watcher cannot start.
var ErrWatch = errors.New("cannot watch sources")

// watchTarget describes what a watch session recompiles.
type watchTarget struct {
	input     string // file or directory, cleaned
	isDir     bool
	outputDir string
	ext       string
}

// runWatchCmd parses flags and runs the watch command until ctx is done.
func runWatchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env)
	if err != nil {
		return flagError(err)
	}

	log := logger.NewWithLevel(env.Stderr, logger.LevelFor(flags.common.quiet, flags.common.verbose))
	setMaxProcs(log)
	warnUnknownEnvVars(log)

	return runWatch(ctx, positional, flags, env, log)
}

// runWatch compiles every source once, then recompiles sources as they
// change. It returns nil when ctx is canceled.
func runWatch(ctx context.Context, positional []string, flags *convertFlags, env *Environment, log *logger.Logger) error {
	if flags.debounce < 0 {
		return fmt.Errorf("%w: --debounce must not be negative, got %s", ErrInvalidFlag, flags.debounce)
	}

	setup, err := prepareConvert(flags, log)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, setup.cfg)
	if err != nil {
		return err
	}
	if inputPath == stdinName {
		return fmt.Errorf("%w: watch needs a file or directory, not stdin", ErrInvalidFlag)
	}

	target := watchTarget{
		input:     filepath.Clean(inputPath),
		outputDir: resolveOutputDir(flags.output, setup.cfg),
		ext:       outputExtension(setup.params.format),
	}
	files, err := discoverFiles(target.input, target.outputDir, target.ext)
	if err != nil && !errors.Is(err, ErrNoSources) {
		return fmt.Errorf("discovering files: %w", err)
	}
	info, err := os.Stat(target.input)
	if err != nil {
		return err
	}
	target.isDir = info.IsDir()

	pool := newConverterPool(pqlite.ResolvePoolSize(setup.cfg.Workers), setup.opts...)
	defer closePool(pool, log)

	// Registered before the first build so edits made during it are seen.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer func() { _ = watcher.Close() }()

	dirs, err := watchDirs(watcher, target)
	if err != nil {
		return err
	}

	rebuild := func(files []FileToConvert) {
		start := env.Now()
		results := convertBatch(ctx, pool, files, setup.params)
		reportResults(results, env.Now().Sub(start), log, env)
	}
	rebuild(files)
	log.WatchStarted(dirs)

	return watchLoop(ctx, watcher, target, flags.debounce, log, rebuild)
}

// watchDirs registers the directories holding the target's sources. A file
// target watches its parent so editors that replace the file on save are
// still seen.
func watchDirs(watcher *fsnotify.Watcher, target watchTarget) ([]string, error) {
	if !target.isDir {
		dir := filepath.Dir(target.input)
		if err := watcher.Add(dir); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrWatch, dir, err)
		}
		return []string{dir}, nil
	}
	return addTree(watcher, target.input)
}

// addTree registers root and every directory below it.
func addTree(watcher *fsnotify.Watcher, root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWatch, path, err)
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// watchLoop collects change events and calls rebuild once no event arrived
// for debounce.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target watchTarget, debounce time.Duration,
	log *logger.Logger, rebuild func([]FileToConvert),
) error {
	pending := make(map[string]struct{})
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if target.isDir && ev.Has(fsnotify.Create) && isDir(ev.Name) {
				dirs, err := addTree(watcher, ev.Name)
				if err != nil {
					log.Warn("watching new directory", "path", ev.Name, "error", err)
				}
				// Files written before the directory was registered.
				for _, f := range sourcesIn(ev.Name) {
					pending[f] = struct{}{}
				}
				if len(dirs) > 0 {
					log.Debug("watching", "directories", dirs)
				}
				fire = time.After(debounce)
				continue
			}
			if !shouldRebuild(ev, target) {
				continue
			}
			log.Debug("changed", "file", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = struct{}{}
			fire = time.After(debounce)

		case <-fire:
			fire = nil
			files := pendingFiles(pending, target, log)
			clear(pending)
			if len(files) > 0 {
				rebuild(files)
			}
		}
	}
}

// shouldRebuild reports whether ev changes a source of target.
func shouldRebuild(ev fsnotify.Event, target watchTarget) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if !target.isDir {
		return filepath.Clean(ev.Name) == target.input
	}
	return isSource(ev.Name)
}

// pendingFiles turns the changed paths into sorted conversion jobs, skipping
// paths that no longer hold a regular file.
func pendingFiles(pending map[string]struct{}, target watchTarget, log *logger.Logger) []FileToConvert {
	base := ""
	if target.isDir {
		base = target.input
	}

	var files []FileToConvert
	for _, path := range slices.Sorted(maps.Keys(pending)) {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			log.Skipped(path, "no longer a regular file")
			continue
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, target.outputDir, base, target.ext),
		})
	}
	return files
}

// sourcesIn lists the sources below dir. Errors yield an empty list.
func sourcesIn(dir string) []string {
	var paths []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && isSource(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
