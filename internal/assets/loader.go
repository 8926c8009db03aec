package assets

// AssetLoader defines the contract for loading document shells and styles.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadShell loads a document shell by name.
	// Returns ErrShellNotFound if the shell doesn't exist.
	// Returns ErrIncompleteShell if only one of its two parts exists.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadShell(name string) (*Shell, error)
}
