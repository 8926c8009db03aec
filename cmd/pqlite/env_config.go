package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-pqlite/internal/config"
	"github.com/alnah/go-pqlite/internal/logger"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "PQLITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string        // PQLITE_CONFIG: config file name or path
	Format         string        // PQLITE_FORMAT: document, fragment, pdf
	Style          string        // PQLITE_STYLE: style name or CSS path
	Shell          string        // PQLITE_SHELL: document shell name
	HighlightStyle string        // PQLITE_HIGHLIGHT_STYLE: enables highlighting
	InputDir       string        // PQLITE_INPUT_DIR: default input directory
	OutputDir      string        // PQLITE_OUTPUT_DIR: default output directory
	AssetPath      string        // PQLITE_ASSET_PATH: custom asset directory
	PageSize       string        // PQLITE_PAGE_SIZE: letter, a4, legal
	Timeout        time.Duration // PQLITE_TIMEOUT: PDF generation timeout
	Workers        int           // PQLITE_WORKERS: parallel workers
}

// knownEnvVars lists valid PQLITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PQLITE_CONFIG":          true,
	"PQLITE_FORMAT":          true,
	"PQLITE_STYLE":           true,
	"PQLITE_SHELL":           true,
	"PQLITE_HIGHLIGHT_STYLE": true,
	"PQLITE_INPUT_DIR":       true,
	"PQLITE_OUTPUT_DIR":      true,
	"PQLITE_ASSET_PATH":      true,
	"PQLITE_PAGE_SIZE":       true,
	"PQLITE_TIMEOUT":         true,
	"PQLITE_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("PQLITE_CONFIG"),
		Format:         os.Getenv("PQLITE_FORMAT"),
		Style:          os.Getenv("PQLITE_STYLE"),
		Shell:          os.Getenv("PQLITE_SHELL"),
		HighlightStyle: os.Getenv("PQLITE_HIGHLIGHT_STYLE"),
		InputDir:       os.Getenv("PQLITE_INPUT_DIR"),
		OutputDir:      os.Getenv("PQLITE_OUTPUT_DIR"),
		AssetPath:      os.Getenv("PQLITE_ASSET_PATH"),
		PageSize:       os.Getenv("PQLITE_PAGE_SIZE"),
	}

	if timeout := os.Getenv("PQLITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("PQLITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized PQLITE_* variable.
func warnUnknownEnvVars(log *logger.Logger) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			log.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig fills config values the file left empty.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfEmpty(&cfg.Output.Format, env.Format)
	setIfEmpty(&cfg.CSS.Style, env.Style)
	setIfEmpty(&cfg.Shell.Name, env.Shell)
	setIfEmpty(&cfg.Input.DefaultDir, env.InputDir)
	setIfEmpty(&cfg.Output.DefaultDir, env.OutputDir)
	setIfEmpty(&cfg.Assets.BasePath, env.AssetPath)
	setIfEmpty(&cfg.Page.Size, env.PageSize)

	if env.HighlightStyle != "" && cfg.Highlight.Style == "" {
		cfg.Highlight.Style = env.HighlightStyle
		cfg.Highlight.Enabled = true
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}

func setIfEmpty(dst *string, v string) {
	if v != "" && *dst == "" {
		*dst = v
	}
}
