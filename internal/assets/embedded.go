package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed styles/*
var styles embed.FS

//go:embed shells
var shells embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadShell loads a shell from embedded assets by name.
func (e *EmbeddedLoader) LoadShell(name string) (*Shell, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("shells", name)
	header, headerErr := fs.ReadFile(shells, path.Join(dir, headerFile))
	footer, footerErr := fs.ReadFile(shells, path.Join(dir, footerFile))

	return buildShell(name, header, headerErr, footer, footerErr)
}

// buildShell turns the results of reading both shell parts into a Shell or
// the matching error. Both loaders share it.
func buildShell(name string, header []byte, headerErr error, footer []byte, footerErr error) (*Shell, error) {
	headerMissing := errors.Is(headerErr, fs.ErrNotExist)
	footerMissing := errors.Is(footerErr, fs.ErrNotExist)

	if headerMissing && footerMissing {
		return nil, fmt.Errorf("%w: %q", ErrShellNotFound, name)
	}
	if headerErr != nil && !headerMissing {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, headerFile, headerErr)
	}
	if footerErr != nil && !footerMissing {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, footerFile, footerErr)
	}
	if headerMissing {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteShell, name, headerFile)
	}
	if footerMissing {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteShell, name, footerFile)
	}

	return &Shell{
		Name:   name,
		Header: string(header),
		Footer: string(footer),
	}, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
