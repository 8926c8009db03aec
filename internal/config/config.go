// Package config loads the YAML configuration of the pqlite CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxNameLength        = 64   // shell, style and highlight style names
	MaxFormatLength      = 10   // "fragment", "document", "pdf"
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
)

// Margin bounds in inches. Zero means "use the default".
const (
	minMargin = 0.25
	maxMargin = 3.0
)

// configDirName is the directory searched under os.UserConfigDir.
const configDirName = "go-pqlite"

var (
	validFormats      = []string{"fragment", "document", "pdf"}
	validPageSizes    = []string{"letter", "a4", "legal"}
	validOrientations = []string{"portrait", "landscape"}
)

// Config holds the CLI configuration. Zero values mean "not set".
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Assets    AssetsConfig    `yaml:"assets"`
	Shell     ShellConfig     `yaml:"shell"`
	CSS       CSSConfig       `yaml:"css"`
	Highlight HighlightConfig `yaml:"highlight"`
	Page      PageConfig      `yaml:"page"`
	Workers   int             `yaml:"workers"` // 0 = auto

	// Path is the file the config was loaded from. Empty for defaults.
	Path string `yaml:"-"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
	Format     string `yaml:"format"`     // "fragment", "document" or "pdf"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ShellConfig selects the document shell wrapped around the body.
type ShellConfig struct {
	Name string `yaml:"name"`
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Named style or path to a .css file
	File  string `yaml:"file"`  // Extra CSS appended after the style
}

// HighlightConfig defines code block highlighting.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`
	Orientation string  `yaml:"orientation"`
	Margin      float64 `yaml:"margin"` // inches
}

// Validate checks field lengths and enumerated values.
// Called by LoadConfig; available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.format", c.Output.Format, MaxFormatLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"shell.name", c.Shell.Name, MaxNameLength},
		{"css.style", c.CSS.Style, MaxPathLength},
		{"css.file", c.CSS.File, MaxPathLength},
		{"highlight.style", c.Highlight.Style, MaxNameLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateChoice("output.format", c.Output.Format, validFormats); err != nil {
		return err
	}
	if err := validateChoice("page.size", c.Page.Size, validPageSizes); err != nil {
		return err
	}
	if err := validateChoice("page.orientation", c.Page.Orientation, validOrientations); err != nil {
		return err
	}

	if c.Page.Margin != 0 && (c.Page.Margin < minMargin || c.Page.Margin > maxMargin) {
		return fmt.Errorf("%w: page.margin must be between %.2f and %.1f, got %.2f",
			ErrInvalidValue, minMargin, maxMargin, c.Page.Margin)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateChoice accepts an empty value or one of choices, ignoring case.
func validateChoice(fieldName, value string, choices []string) error {
	if value == "" || slices.Contains(choices, strings.ToLower(value)) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)",
		ErrInvalidValue, fieldName, value, strings.Join(choices, ", "))
}

// DefaultConfig returns a configuration with nothing set.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in the current directory then in the user
// config directory, with .yaml then .yml extensions.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Path = configPath
	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file in SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
