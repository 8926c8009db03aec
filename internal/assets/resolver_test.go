package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("custom path", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadShell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "shells/bare/header.html", "<main>")
	writeAsset(t, dir, "shells/bare/footer.html", "</main>")
	writeAsset(t, dir, "shells/broken/header.html", "<main>")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name       string
		shell      string
		wantHeader string
		wantErr    error
	}{
		{"custom shell", "bare", "<main>", nil},
		{"falls back to embedded", DefaultShellName, DefaultShell().Header, nil},
		{"incomplete custom shell does not fall back", "broken", "", ErrIncompleteShell},
		{"missing everywhere", "nowhere", "", ErrShellNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			shell, err := r.LoadShell(tt.shell)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadShell(%q) error = %v, want %v", tt.shell, err, tt.wantErr)
			}
			if err == nil && shell.Header != tt.wantHeader {
				t.Errorf("LoadShell(%q) header = %q, want %q", tt.shell, shell.Header, tt.wantHeader)
			}
		})
	}
}

func TestAssetResolver_OverridesDefaultShell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "shells/default/header.html", "H")
	writeAsset(t, dir, "shells/default/footer.html", "F")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	shell, err := r.LoadShell(DefaultShellName)
	if err != nil {
		t.Fatalf("LoadShell() error = %v", err)
	}
	if shell.Header != "H" || shell.Footer != "F" {
		t.Errorf("LoadShell() = %+v, want the custom default", shell)
	}
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles/print.css", "custom print")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	got, err := r.LoadStyle("print")
	if err != nil {
		t.Fatalf("LoadStyle(print) error = %v", err)
	}
	if got != "custom print" {
		t.Errorf("LoadStyle(print) = %q, want custom override", got)
	}

	// "dark" only exists embedded.
	if _, err := r.LoadStyle("dark"); err != nil {
		t.Errorf("LoadStyle(dark) error = %v, want embedded fallback", err)
	}
}

func TestAssetResolver_ReadErrorDoesNotFallBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A directory where a file is expected yields a read error, not "not found".
	if err := os.MkdirAll(filepath.Join(dir, "styles", "print.css"), 0o755); err != nil {
		t.Fatalf("creating dir: %v", err)
	}

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	if _, err := r.LoadStyle("print"); !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle(print) error = %v, want ErrAssetRead", err)
	}
}
