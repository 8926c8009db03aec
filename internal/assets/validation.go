package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLength bounds shell and style names.
const maxAssetNameLength = 64

// ValidateAssetName checks that an asset name is safe for use as a file or
// directory name. Returns ErrInvalidAssetName if the name is empty, too long,
// or contains path separators, dots or NUL bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
