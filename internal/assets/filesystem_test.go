package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeAsset creates base/rel with content, making parent directories.
func writeAsset(t *testing.T, base, rel, content string) {
	t.Helper()

	p := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", p, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "absent"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "plain.txt", "x")

		_, err := NewFilesystemLoader(filepath.Join(dir, "plain.txt"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadShell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "shells/plain/header.html", "<body>")
	writeAsset(t, dir, "shells/plain/footer.html", "</body>")
	writeAsset(t, dir, "shells/headless/footer.html", "</body>")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("complete shell", func(t *testing.T) {
		t.Parallel()

		shell, err := loader.LoadShell("plain")
		if err != nil {
			t.Fatalf("LoadShell() error = %v", err)
		}
		if shell.Header != "<body>" || shell.Footer != "</body>" {
			t.Errorf("LoadShell() = %+v", shell)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadShell("headless")
		if !errors.Is(err, ErrIncompleteShell) {
			t.Errorf("LoadShell() error = %v, want ErrIncompleteShell", err)
		}
	})

	t.Run("unknown shell", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadShell("nothing")
		if !errors.Is(err, ErrShellNotFound) {
			t.Errorf("LoadShell() error = %v, want ErrShellNotFound", err)
		}
	})

	t.Run("invalid names", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"", "../plain", `..\plain`, "plain.html"} {
			_, err := loader.LoadShell(name)
			if !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("LoadShell(%q) error = %v, want ErrInvalidAssetName", name, err)
			}
		}
	})
}

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles/wide.css", "div#main { width: 100%; }")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	got, err := loader.LoadStyle("wide")
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if got != "div#main { width: 100%; }" {
		t.Errorf("LoadStyle() = %q", got)
	}

	if _, err := loader.LoadStyle("narrow"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(narrow) error = %v, want ErrStyleNotFound", err)
	}
}

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeAsset(t, outside, "secret.css", "secret")
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatalf("creating styles dir: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(dir, "styles", "evil.css")); err != nil {
		t.Skipf("symlink creation not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	if _, err := loader.LoadStyle("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() through escaping symlink error = %v, want ErrPathTraversal", err)
	}
}
