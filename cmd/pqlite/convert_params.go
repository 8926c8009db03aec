package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	pqlite "github.com/alnah/go-pqlite"
	"github.com/alnah/go-pqlite/internal/config"
)

// Sentinel errors for resolving conversion parameters.
var (
	ErrReadCSS     = errors.New("failed to read CSS file")
	ErrInvalidFlag = errors.New("invalid flag value")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	format pqlite.Format
	css    string
	page   *pqlite.PageSettings
}

// outputExtension returns the file extension written for format.
func outputExtension(format pqlite.Format) string {
	if format == pqlite.FormatPDF {
		return ".pdf"
	}
	return ".html"
}

// loadConfig loads the config named by the flag or PQLITE_CONFIG, then fills
// gaps from the other environment variables. No name means defaults.
func loadConfig(name string, env *envConfig) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(f *convertFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}

	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.orientation != "" {
		cfg.Page.Orientation = f.page.orientation
	}
	if f.page.margin != 0 {
		cfg.Page.Margin = f.page.margin
	}

	if f.assets.style != "" {
		cfg.CSS.Style = f.assets.style
	}
	if f.assets.css != "" {
		cfg.CSS.File = f.assets.css
	}
	if f.assets.shell != "" {
		cfg.Shell.Name = f.assets.shell
	}
	if f.assets.assetPath != "" {
		cfg.Assets.BasePath = f.assets.assetPath
	}
	if f.assets.highlight {
		cfg.Highlight.Enabled = true
	}
	if f.assets.highlightStyle != "" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = f.assets.highlightStyle
	}

	// --no-style wins over both config and flags.
	if f.assets.noStyle {
		cfg.CSS = config.CSSConfig{}
	}
}

// resolveTimeout picks the PDF timeout: flag, then environment, then the
// library default (zero).
func resolveTimeout(flagTimeout time.Duration, env *envConfig) (time.Duration, error) {
	if flagTimeout < 0 {
		return 0, fmt.Errorf("%w: --timeout must be positive, got %v", ErrInvalidFlag, flagTimeout)
	}
	if flagTimeout > 0 {
		return flagTimeout, nil
	}
	return env.Timeout, nil
}

// buildConverterOptions turns the merged config into converter options.
func buildConverterOptions(cfg *config.Config, timeout time.Duration) []pqlite.Option {
	var opts []pqlite.Option
	if timeout > 0 {
		opts = append(opts, pqlite.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, pqlite.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Shell.Name != "" {
		opts = append(opts, pqlite.WithShell(cfg.Shell.Name))
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, pqlite.WithStyle(cfg.CSS.Style))
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, pqlite.WithHighlighting(cfg.Highlight.Style))
	}
	return opts
}

// buildConversionParams resolves the per-file input shared by a batch.
func buildConversionParams(cfg *config.Config) (*conversionParams, error) {
	format, err := pqlite.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	css, err := readCSSFile(cfg.CSS.File)
	if err != nil {
		return nil, err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}

	return &conversionParams{format: format, css: css, page: page}, nil
}

// buildPageSettings creates PageSettings from config, or nil when the config
// sets no page field.
func buildPageSettings(cfg *config.Config) (*pqlite.PageSettings, error) {
	if cfg.Page.Size == "" && cfg.Page.Orientation == "" && cfg.Page.Margin == 0 {
		return nil, nil
	}

	ps := pqlite.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		ps.Margin = cfg.Page.Margin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// readCSSFile returns the content of path, or "" for an empty path.
func readCSSFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(data), nil
}
