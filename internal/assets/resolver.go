package assets

import "errors"

// AssetResolver looks assets up in a user directory first, then in the
// embedded set. Only a "not found" result moves on to the next loader;
// invalid names, incomplete shells and read errors are returned as is.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver builds a resolver. An empty dir means embedded assets only.
func NewAssetResolver(dir string) (*AssetResolver, error) {
	if dir == "" {
		return &AssetResolver{chain: []AssetLoader{NewEmbeddedLoader()}}, nil
	}

	custom, err := NewFilesystemLoader(dir)
	if err != nil {
		return nil, err
	}
	return &AssetResolver{chain: []AssetLoader{custom, NewEmbeddedLoader()}}, nil
}

// LoadStyle implements AssetLoader.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return lookup(r.chain, func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadShell implements AssetLoader.
func (r *AssetResolver) LoadShell(name string) (*Shell, error) {
	return lookup(r.chain, func(l AssetLoader) (*Shell, error) { return l.LoadShell(name) })
}

// HasCustomLoader reports whether a user asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

func lookup[T any](chain []AssetLoader, load func(AssetLoader) (T, error)) (T, error) {
	var (
		v   T
		err error
	)
	for _, l := range chain {
		v, err = load(l)
		if err == nil || !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrShellNotFound) {
			return v, err
		}
	}
	return v, err
}

var _ AssetLoader = (*AssetResolver)(nil)
