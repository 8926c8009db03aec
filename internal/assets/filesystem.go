package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads shells and styles from a user asset directory:
//
//	{root}/styles/{name}.css
//	{root}/shells/{name}/header.html
//	{root}/shells/{name}/footer.html
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader opens dir as an asset directory.
// Returns ErrInvalidBasePath unless dir is an existing, readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	entries, err := os.ReadDir(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, root)
	case err != nil && entries == nil && !isDir(root):
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{root: root}, nil
}

// LoadStyle returns the contents of styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := f.read("styles", name+".css")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	case errors.Is(err, ErrPathTraversal):
		return "", err
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// LoadShell returns the header and footer of shells/{name}.
func (f *FilesystemLoader) LoadShell(name string) (*Shell, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	header, headerErr := f.read("shells", name, headerFile)
	if errors.Is(headerErr, ErrPathTraversal) {
		return nil, headerErr
	}
	footer, footerErr := f.read("shells", name, footerFile)
	if errors.Is(footerErr, ErrPathTraversal) {
		return nil, footerErr
	}

	return buildShell(name, header, headerErr, footer, footerErr)
}

// read loads a file below root. Symlinks are followed, but the target must
// stay inside root. A missing file yields an error matching fs.ErrNotExist.
func (f *FilesystemLoader) read(elem ...string) ([]byte, error) {
	path := filepath.Join(append([]string{f.root}, elem...)...)

	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	if !strings.HasPrefix(target, f.root+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, filepath.Join(elem...), f.root)
	}

	return os.ReadFile(target) // #nosec G304 -- contained in root
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var _ AssetLoader = (*FilesystemLoader)(nil)
