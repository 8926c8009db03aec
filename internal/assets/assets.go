package assets

import (
	"io/fs"
	"strings"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadShell loads a built-in shell by name.
func LoadShell(name string) (*Shell, error) {
	return defaultLoader.LoadShell(name)
}

// DefaultShell returns the built-in default shell. It panics if the embedded
// files are missing, which only happens with a broken build.
func DefaultShell() *Shell {
	s, err := defaultLoader.LoadShell(DefaultShellName)
	if err != nil {
		panic("assets: default shell: " + err.Error())
	}
	return s
}

// StyleNames lists the built-in styles, sorted.
func StyleNames() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".css"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	return names
}

// ShellNames lists the built-in shells, sorted.
func ShellNames() []string {
	entries, err := fs.ReadDir(shells, "shells")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
